// Package source defines the playable media variants that the switcher chooses between.
package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// Source is one playable variant of a media item.
// Field names on the wire follow the <source> objects players are usually configured with.
type Source struct {
	// URL of the stream or file.
	URL string `json:"src" jsonschema:"required,description=Stream or file URL"`
	// Type is the mime type (e.g. "video/mp4", "application/vnd.apple.mpegurl").
	Type string `json:"type,omitempty" jsonschema:"description=Mime type"`
	// Label is shown to the user (e.g. "HD", "720p").
	Label string `json:"label,omitempty" jsonschema:"description=Menu label"`
	// Res is the raw resolution key (e.g. "720"). Sources sharing it are grouped together.
	Res string `json:"res,omitempty" jsonschema:"description=Resolution value such as 720"`

	// Index is the position in the input list. Never handed to the player.
	Index int `json:"-"`
}

// Stream is the sanitized view of a Source handed to a player.
type Stream struct {
	URL  string `json:"src"`
	Type string `json:"type,omitempty"`
	Res  string `json:"res,omitempty"`
}

// Resolution returns the numeric resolution, or None when Res is empty or not a finite number.
// A trailing "p" is tolerated so "720p" and "720" compare equal.
func (s *Source) Resolution() mo.Option[float64] {
	raw := strings.TrimSuffix(strings.TrimSpace(s.Res), "p")
	if raw == "" {
		return mo.None[float64]()
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return mo.None[float64]()
	}
	return mo.Some(v)
}

// Stream strips bookkeeping fields.
func (s *Source) Stream() Stream {
	return Stream{URL: s.URL, Type: s.Type, Res: s.Res}
}

// String returns the label or URL for display.
func (s *Source) String() string {
	if s.Label != "" {
		return s.Label
	}
	return s.URL
}

// Streams sanitizes a list of sources, preserving order.
func Streams(sources []*Source) []Stream {
	streams := make([]Stream, len(sources))
	for i, s := range sources {
		streams[i] = s.Stream()
	}
	return streams
}
