package style

import "github.com/charmbracelet/lipgloss"

// Menu colors.
var (
	Base  = lipgloss.Color("#1e1e2e")
	Text  = lipgloss.Color("#cdd6f4")
	Mauve = lipgloss.Color("#cba6f7")
	Red   = lipgloss.Color("#f38ba8")
	Peach = lipgloss.Color("#fab387")

	// AccentColor marks the active quality and the selected menu entry.
	AccentColor = Mauve
	HiRed       = Red
)
