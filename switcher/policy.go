package switcher

import (
	"strings"

	"github.com/vidswitch/vidswitch/catalog"
)

// Mode is the kind of default-selection policy.
type Mode int

const (
	Unset Mode = iota
	Low
	High
	Explicit
)

func (m Mode) String() string {
	switch m {
	case Low:
		return "low"
	case High:
		return "high"
	case Explicit:
		return "explicit"
	default:
		return "unset"
	}
}

// Default is the configured default-selection policy.
type Default struct {
	Mode Mode
	// Res is the resolution key looked up when Mode is Explicit.
	Res string
}

// ParseDefault reads "low", "high", a resolution value or an empty string.
func ParseDefault(raw string) Default {
	raw = strings.TrimSpace(raw)

	switch raw {
	case "":
		return Default{Mode: Unset}
	case "low":
		return Default{Mode: Low}
	case "high":
		return Default{Mode: High}
	default:
		return Default{Mode: Explicit, Res: raw}
	}
}

func (d Default) String() string {
	if d.Mode == Explicit {
		return d.Res
	}
	return d.Mode.String()
}

// Choose applies the policy to a catalog.
//
// "low" and "high" are checked before the explicit lookup. An explicit value selects
// its whole resolution bucket, so the player can fall back between formats of the same
// quality. An unset or unknown value behaves like "low".
func Choose(c *catalog.Catalog, d Default) (Selection, error) {
	if c == nil || c.Empty() {
		return Selection{}, ErrEmptyCatalog
	}

	if d.Mode == Low {
		last, _ := c.Last()
		return newSelection(last), nil
	}
	if d.Mode == High {
		first, _ := c.First()
		return newSelection(first), nil
	}
	if d.Mode == Explicit {
		if bucket, ok := c.ByResolution().Get(d.Res); ok {
			return newSelection(bucket...), nil
		}
	}

	last, _ := c.Last()
	return newSelection(last), nil
}
