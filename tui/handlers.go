package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidswitch/vidswitch/icon"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/switcher"
)

type (
	switchDoneMsg struct {
		label string
		err   error
	}
	switcherEventMsg switcher.Event
	pauseMsg         bool
	playerExitedMsg  struct{}
)

// switchTo runs the switch off the UI loop.
func (b *statefulBubble) switchTo(label string) tea.Cmd {
	return func() tea.Msg {
		log.Infof("menu: switching to %q", label)
		err := b.switcher.SwitchToLabel(b.ctx, label)
		return switchDoneMsg{label: label, err: err}
	}
}

func (b *statefulBubble) togglePause() tea.Cmd {
	return func() tea.Msg {
		if err := b.player.TogglePause(); err != nil {
			log.Warnf("toggle pause: %v", err)
		}
		return nil
	}
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-b.eventsChannel:
			return switcherEventMsg(e)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) waitForPause() tea.Cmd {
	return func() tea.Msg {
		select {
		case paused := <-b.pauseChannel:
			return pauseMsg(paused)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.player.Wait():
			return playerExitedMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

// describe turns a switch result into the status line.
func describe(done switchDoneMsg) (status string, fatal bool) {
	switch {
	case done.err == nil:
		return icon.Get(icon.Success) + " switched to " + done.label, false
	case errors.Is(done.err, switcher.ErrStaleSwitch):
		return icon.Get(icon.Stale) + " " + done.label + " superseded by a newer switch", false
	case errors.Is(done.err, switcher.ErrSwitchTimeout):
		return icon.Get(icon.Timeout) + " " + done.label + " did not start in time", false
	case errors.Is(done.err, switcher.ErrUnknownLabel):
		return icon.Get(icon.Warn) + " " + done.err.Error(), false
	default:
		return done.err.Error(), true
	}
}
