package state

import (
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/menu"
)

// Level is one open menu: the items its loader produced, the filter over
// them, the cursor and the viewport.
type Level struct {
	ID             string
	Title          string
	Node           *menu.Node
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel builds a level for node with the cursor on the first enabled item.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Node:       node,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the visible index of id, falling back to the last
// colon-separated segment so "file:save-checkpoint" finds "save-checkpoint".
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	if i := indexByID(l.Items, id); i >= 0 {
		return i
	}
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		return indexByID(l.Items, id[idx+1:])
	}
	return -1
}

func indexByID(items []menu.Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems swaps in a fresh item list. The cursor follows the item it
// was on when that item is still present.
func (l *Level) UpdateItems(items []menu.Item) {
	var keep string
	if current, ok := l.Current(); ok {
		keep = current.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if keep != "" {
		if i := indexByID(l.Items, keep); i >= 0 {
			l.Cursor = i
		}
	}
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
