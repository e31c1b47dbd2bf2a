package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/style"
	"github.com/vidswitch/vidswitch/switcher"
	"github.com/vidswitch/vidswitch/util"
)

// statefulBubble holds the menu state and its component models.
type statefulBubble struct {
	ctx   context.Context
	state state

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	qualitiesC list.Model
	helpC      help.Model

	switcher Switcher
	player   Player
	title    string

	eventsChannel chan switcher.Event
	pauseChannel  chan bool
	unsubscribe   func()

	// pending counts switches that have not returned yet
	pending int
	paused  bool

	progressStatus string
	lastError      error

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	// header and status line
	const reserved = 4

	b.qualitiesC.SetSize(width-xx, max(height-yy-reserved, 0))
	b.qualitiesC.Help.Width = width - xx

	b.width = width - x
	b.height = height - y
	b.helpC.Width = width - xx
}

// refreshItems rebuilds the menu from the catalog, marking the active selection.
func (b *statefulBubble) refreshItems() {
	selected := b.qualitiesC.Index()

	items := itemsOf(b.switcher.Catalog(), b.switcher.Current().Label)
	b.qualitiesC.SetItems(lo.Map(items, func(i *listItem, _ int) list.Item { return i }))
	b.qualitiesC.Select(selected)
}

func (b *statefulBubble) close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		ctx:      ctx,
		keymap:   keymap,
		switcher: options.Switcher,
		player:   options.Player,
		title:    options.Title,

		eventsChannel: make(chan switcher.Event, 32),
		pauseChannel:  make(chan bool, 8),
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.qualitiesC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.qualitiesC.KeyMap = keymap.forList()
	bubble.qualitiesC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.qualitiesC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.qualitiesC.Title = "Quality"
	bubble.qualitiesC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1)
	bubble.qualitiesC.Styles.NoItems = paddingStyle
	bubble.qualitiesC.SetFilteringEnabled(false)
	bubble.qualitiesC.SetShowPagination(false)
	bubble.qualitiesC.SetShowStatusBar(false)
	bubble.qualitiesC.StatusMessageLifetime = time.Hour * 999

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.unsubscribe = bubble.switcher.Subscribe(func(e switcher.Event) {
		bubble.eventsChannel <- e
	})

	if notifier, ok := bubble.player.(pauseNotifier); ok {
		notifier.OnPauseChange(func(paused bool) {
			select {
			case bubble.pauseChannel <- paused:
			default:
			}
		})
	}

	bubble.refreshItems()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(menuState)

	return &bubble
}
