package manifest

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/source"
)

// ParseHLS turns each variant of a master playlist into a source.
// A media playlist becomes a single source without resolution pointing at base.
func ParseHLS(r io.Reader, base string) (*Manifest, error) {
	playlist, listType, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, fmt.Errorf("decode m3u8: %w", err)
	}

	m := &Manifest{}

	switch listType {
	case m3u8.MASTER:
		master := playlist.(*m3u8.MasterPlaylist)
		for _, v := range master.Variants {
			if v == nil || v.Iframe {
				continue
			}
			m.Sources = append(m.Sources, variantSource(v, base))
		}
	case m3u8.MEDIA:
		m.Sources = append(m.Sources, &source.Source{
			URL:   base,
			Type:  constant.MimeHLS,
			Label: "auto",
		})
	}

	return m, nil
}

func variantSource(v *m3u8.Variant, base string) *source.Source {
	s := &source.Source{
		URL:  resolve(base, v.URI),
		Type: constant.MimeHLS,
	}

	if height, ok := variantHeight(v.Resolution); ok {
		s.Res = strconv.Itoa(height)
		s.Label = s.Res + "p"
	} else if v.Bandwidth > 0 {
		s.Label = fmt.Sprintf("%d kbps", v.Bandwidth/1000)
	}

	if v.Name != "" {
		s.Label = v.Name
	}

	return s
}

// variantHeight reads the height out of a WIDTHxHEIGHT resolution attribute.
func variantHeight(resolution string) (int, bool) {
	_, h, found := strings.Cut(strings.ToLower(resolution), "x")
	if !found {
		return 0, false
	}

	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, false
	}
	return height, true
}

// resolve makes ref absolute against base, which is either a URL or a local path.
func resolve(base, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() || base == "" {
		return ref
	}

	if isRemote(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return ref
		}
		return baseURL.ResolveReference(u).String()
	}

	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}
