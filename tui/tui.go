// Package tui provides the quality menu shown while a video plays.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidswitch/vidswitch/catalog"
	"github.com/vidswitch/vidswitch/switcher"
)

// Switcher is what the menu needs from a switcher.Switcher.
type Switcher interface {
	SwitchToLabel(ctx context.Context, label string) error
	Label() string
	Current() switcher.Selection
	Catalog() *catalog.Catalog
	Subscribe(fn func(switcher.Event)) (unsubscribe func())
}

// Player is the part of the playback engine the menu controls directly.
type Player interface {
	TogglePause() error
	Wait() <-chan struct{}
}

// pauseNotifier is implemented by engines that push pause state changes.
type pauseNotifier interface {
	OnPauseChange(fn func(paused bool))
}

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Title    string
	Switcher Switcher
	Player   Player
}

// Run executes the menu until the user quits or the player exits.
func Run(ctx context.Context, options *Options) error {
	bubble := newBubble(ctx, options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
