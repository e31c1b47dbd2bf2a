package switcher

import (
	"github.com/samber/lo"
	"github.com/vidswitch/vidswitch/source"
)

// Selection is the group of sources assigned to the player together with the label shown to the user.
// A switch always builds a fresh Selection.
type Selection struct {
	Label   string
	Sources []*source.Source
}

func newSelection(sources ...*source.Source) Selection {
	sel := Selection{Sources: append([]*source.Source(nil), sources...)}
	if first, ok := lo.First(sources); ok {
		sel.Label = first.Label
	}
	return sel
}

// Empty reports whether the selection holds no sources.
func (s Selection) Empty() bool {
	return len(s.Sources) == 0
}

// Streams returns the sanitized sources handed to the player.
func (s Selection) Streams() []source.Stream {
	return source.Streams(s.Sources)
}

// Snapshot is the player state captured right before a switch.
type Snapshot struct {
	Time   float64
	Paused bool
}
