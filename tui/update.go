package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidswitch/vidswitch/switcher"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		if b.pending == 0 {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case switchDoneMsg:
		b.pending--
		status, fatal := describe(msg)
		b.progressStatus = status
		if fatal {
			b.raiseError(msg.err)
		}
		b.refreshItems()
		return b, nil
	case switcherEventMsg:
		if msg.Kind == switcher.ResolutionChange {
			b.refreshItems()
		}
		return b, b.waitForEvent()
	case pauseMsg:
		b.paused = bool(msg)
		return b, b.waitForPause()
	case playerExitedMsg:
		return b, tea.Quit
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case b.state == errorState && bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	switch b.state {
	case menuState:
		return b.updateMenu(msg)
	default:
		return b, nil
	}
}

func (b *statefulBubble) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.switchQuality):
			item, ok := b.qualitiesC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}

			b.pending++
			b.progressStatus = "switching to " + item.label
			return b, tea.Batch(b.spinnerC.Tick, b.switchTo(item.label))
		case bubblesKey.Matches(msg, b.keymap.playPause):
			if b.player == nil {
				return b, nil
			}
			return b, b.togglePause()
		}
	}

	var cmd tea.Cmd
	b.qualitiesC, cmd = b.qualitiesC.Update(msg)
	return b, cmd
}
