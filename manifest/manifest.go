// Package manifest turns JSON manifests, HLS master playlists and command line flags into sources.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/source"
	"github.com/vidswitch/vidswitch/util"
)

// ErrNoSources is returned for a manifest that parses but lists nothing playable.
var ErrNoSources = errors.New("manifest has no sources")

// Manifest is a titled list of sources.
type Manifest struct {
	Title   string           `json:"title,omitempty" jsonschema:"description=Media title shown by the player"`
	Sources []*source.Source `json:"sources" jsonschema:"required,description=Playable variants of the media"`
}

// Load reads a manifest from a local path or an http(s) URL.
func Load(ctx context.Context, target string) (*Manifest, error) {
	if isRemote(target) {
		data, err := Fetch(ctx, target)
		if err != nil {
			return nil, err
		}
		return Parse(data, target)
	}

	data, err := filesystem.API().ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, target)
}

// Parse detects the manifest format. base is where the data came from;
// relative playlist entries are resolved against it.
func Parse(data []byte, base string) (*Manifest, error) {
	trimmed := bytes.TrimSpace(data)

	var (
		m   *Manifest
		err error
	)

	switch {
	case bytes.HasPrefix(trimmed, []byte("#EXTM3U")):
		m, err = ParseHLS(bytes.NewReader(trimmed), base)
	case bytes.HasPrefix(trimmed, []byte("[")):
		// bare source list
		m = &Manifest{}
		err = json.Unmarshal(trimmed, &m.Sources)
	default:
		m = &Manifest{}
		err = json.Unmarshal(trimmed, m)
	}

	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", base, err)
	}

	if m.Title == "" {
		m.Title = titleOf(base)
	}

	return m.normalize()
}

// normalize drops nil entries and numbers the rest in input order.
func (m *Manifest) normalize() (*Manifest, error) {
	sources := make([]*source.Source, 0, len(m.Sources))
	for _, s := range m.Sources {
		if s == nil {
			continue
		}
		s.Index = len(sources)
		sources = append(sources, s)
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	m.Sources = sources
	return m, nil
}

// Schema returns the JSON schema of the manifest format.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}
	return reflector.Reflect(&Manifest{})
}

// FromFlags builds a manifest from "url,type,label,res" values.
func FromFlags(title string, values []string) (*Manifest, error) {
	m := &Manifest{Title: title}
	for _, v := range values {
		s, err := ParseFlag(v)
		if err != nil {
			return nil, err
		}
		m.Sources = append(m.Sources, s)
	}
	return m.normalize()
}

// ParseFlag reads one "url,type,label,res" value. Everything but the url is optional.
func ParseFlag(value string) (*source.Source, error) {
	fields := strings.SplitN(value, ",", 4)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[0] == "" {
		return nil, fmt.Errorf("source %q: missing url", value)
	}

	s := &source.Source{URL: fields[0]}
	if len(fields) > 1 {
		s.Type = fields[1]
	}
	if len(fields) > 2 {
		s.Label = fields[2]
	}
	if len(fields) > 3 {
		s.Res = fields[3]
	}
	if s.Label == "" && s.Res != "" {
		s.Label = s.Res + "p"
	}

	return s, nil
}

func isRemote(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func titleOf(base string) string {
	if base == "" {
		return ""
	}
	if u, err := url.Parse(base); err == nil && u.Path != "" {
		base = u.Path
	}
	return util.FileStem(base)
}
