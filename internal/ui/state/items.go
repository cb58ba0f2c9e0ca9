package state

import "github.com/atomicstack/notebook-menubar/internal/menu"

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

// FirstEnabled returns the index of the first enabled item, or 0 when every
// item is disabled.
func FirstEnabled(items []menu.Item) int {
	for i, item := range items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}
