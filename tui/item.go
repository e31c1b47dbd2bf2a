package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/vidswitch/vidswitch/catalog"
	"github.com/vidswitch/vidswitch/icon"
	"github.com/vidswitch/vidswitch/source"
	"github.com/vidswitch/vidswitch/style"
	"github.com/vidswitch/vidswitch/util"
)

// listItem is one menu entry: a label and the sources behind it.
type listItem struct {
	label   string
	sources []*source.Source
	active  bool
}

func itemsOf(c *catalog.Catalog, activeLabel string) []*listItem {
	items := make([]*listItem, 0, c.ByLabel().Len())
	for pair := c.ByLabel().Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, &listItem{
			label:   pair.Key,
			sources: pair.Value,
			active:  pair.Key == activeLabel,
		})
	}
	return items
}

func (t *listItem) Title() string {
	title := t.label
	if title == "" {
		title = style.Faint("unlabelled")
	}

	if t.active {
		mark := lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
		title = fmt.Sprintf("%s %s", title, mark)
	}
	return title
}

func (t *listItem) Description() string {
	var parts []string

	resolutions := lo.Uniq(lo.FilterMap(t.sources, func(s *source.Source, _ int) (string, bool) {
		return s.Res, s.Res != ""
	}))
	if len(resolutions) > 0 {
		parts = append(parts, strings.Join(resolutions, "/"))
	}

	types := lo.Uniq(lo.FilterMap(t.sources, func(s *source.Source, _ int) (string, bool) {
		return s.Type, s.Type != ""
	}))
	if len(types) > 0 {
		parts = append(parts, strings.Join(types, ", "))
	}

	parts = append(parts, util.Quantify(len(t.sources), "source", "sources"))

	return strings.Join(parts, " • ")
}

func (t *listItem) FilterValue() string {
	return t.label
}
