package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/nav"
)

var _ list.Item = entryItem{}

// entryItem wraps [models.BookmarkEntry] to implement [list.Item].
type entryItem struct {
	entry models.BookmarkEntry
}

func (i entryItem) FilterValue() string { return i.entry.DisplayTitle() }
func (i entryItem) Title() string       { return i.entry.DisplayTitle() }
func (i entryItem) Description() string {
	desc := nav.Hostname(i.entry.URL)
	if !i.entry.Summarized() {
		desc += " ↗"
	}
	return desc
}

func entryItems(entries []models.BookmarkEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}
