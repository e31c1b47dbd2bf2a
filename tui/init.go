package tui

import tea "github.com/charmbracelet/bubbletea"

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForEvent(), b.waitForPause()}
	if b.player != nil {
		cmds = append(cmds, b.waitForPlayerExit())
	}
	return tea.Batch(cmds...)
}
