package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/vidswitch/vidswitch/color"
	"github.com/vidswitch/vidswitch/icon"
	"github.com/vidswitch/vidswitch/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case menuState:
		return b.viewMenu()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) header() string {
	playback := icon.Get(icon.Play)
	if b.paused {
		playback = icon.Get(icon.Pause)
	}

	return fmt.Sprintf("%s %s %s",
		style.Title(b.title),
		playback,
		style.Tag(style.Base, style.AccentColor)(b.switcher.Label()),
	)
}

func (b *statefulBubble) statusLine() string {
	if b.progressStatus == "" {
		return ""
	}

	if b.pending > 0 {
		return b.spinnerC.View() + " " + b.progressStatus
	}
	return style.Fg(color.Gray)(b.progressStatus)
}

func (b *statefulBubble) viewMenu() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		paddingStyle.Render(style.Truncate(b.width)(b.header())),
		listExtraPaddingStyle.Render(b.qualitiesC.View()),
		paddingStyle.Render(style.Truncate(b.width)(b.statusLine())),
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Switch failed: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
