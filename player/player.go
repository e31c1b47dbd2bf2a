// Package player defines the playback engines the switcher can drive.
// The primary implementation targets 'mpv' via its JSON-IPC interface.
package player

import (
	"context"
	"fmt"

	"github.com/vidswitch/vidswitch/switcher"
)

// Player is a playback engine that the switcher can drive.
type Player interface {
	switcher.Player

	// Start launches the engine idle, with nothing loaded.
	Start(ctx context.Context, title string) error

	// TogglePause inverts the current playback suspension state.
	TogglePause() error

	// GetDuration retrieves the total length of the active media in seconds.
	GetDuration() (float64, error)

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the engine and releases all associated resources.
	Close() error

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}
}

// Available lists the engines New understands.
var Available = []string{"mpv"}

// New returns the engine registered under name.
func New(name string, extraArgs []string) (Player, error) {
	switch name {
	case "mpv":
		return NewMPV(extraArgs...), nil
	default:
		return nil, fmt.Errorf("unsupported player %q, available: %v", name, Available)
	}
}
