package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the filter query and puts its cursor at the given rune
// offset. Starting a filter remembers the menu cursor; clearing it restores
// that position.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter)
	now := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = clampRune(cursor, len([]rune(query)))

	switch {
	case now != "" && was == "":
		l.LastCursor = l.Cursor
		l.Cursor = 0
	case now != "":
		l.Cursor = 0
	}
	l.applyFilter()

	if now != "" {
		if idx := BestMatchIndex(l.Items, now); idx >= 0 {
			l.Cursor = idx
		}
		return
	}
	if was == "" {
		return
	}
	if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
		l.Cursor = l.LastCursor
	} else if len(l.Items) > 0 {
		l.Cursor = FirstEnabled(l.Items)
	}
	l.LastCursor = -1
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	switch {
	case n == 0:
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	case l.Cursor < 0:
		l.Cursor = FirstEnabled(l.Items)
	case l.Cursor >= n:
		l.Cursor = n - 1
	}
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

func clampRune(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clampRune(l.FilterCursor, len([]rune(l.Filter)))
}

// wordStart is the offset of the word before pos, skipping trailing spaces.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd is the offset just past the word at pos and the spaces after it.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

// splice replaces runes[from:to] with insert and moves the cursor to the
// end of the insertion.
func (l *Level) splice(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	next := make([]rune, 0, len(runes)-(to-from)+len(insert))
	next = append(next, runes[:from]...)
	next = append(next, insert...)
	next = append(next, runes[to:]...)
	l.SetFilter(string(next), from+len(insert))
}

// moveFilterCursor sets the filter cursor and reports whether it moved.
func (l *Level) moveFilterCursor(pos int) bool {
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := l.FilterCursorPos()
	l.splice(pos, pos, insert)
	return true
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward deletes the word before the filter cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(clampRune(l.FilterCursorPos()-1, len([]rune(l.Filter))))
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(clampRune(l.FilterCursorPos()+1, len([]rune(l.Filter))))
}

// actionName is the part of an item id a user would type: the last
// segment, so "file:download" matches "download" and
// "restore-checkpoint:abc" matches "abc".
func actionName(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// FilterItems returns items matching query in menu order. Fuzzy label
// matches win; when there are none, substring matches on the label or
// the action name are used.
func FilterItems(items []menu.Item, query string) []menu.Item {
	q := strings.TrimSpace(query)
	if q == "" {
		return CloneItems(items)
	}
	keep := make([]bool, len(items))
	found := false
	for _, rank := range fuzzy.RankFindNormalizedFold(q, labelsOf(items)) {
		keep[rank.OriginalIndex] = true
		found = true
	}
	if !found {
		lower := strings.ToLower(q)
		for i, item := range items {
			keep[i] = containsFold(item.Label, lower) || containsFold(actionName(item.ID), lower)
		}
	}
	out := make([]menu.Item, 0, len(items))
	for i, item := range items {
		if keep[i] {
			out = append(out, item)
		}
	}
	return out
}

func labelsOf(items []menu.Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func containsFold(s, lower string) bool {
	return strings.Contains(strings.ToLower(s), lower)
}

// matchTiers orders how an item can answer a query, strongest first.
var matchTiers = []func(item menu.Item, q, lower string) bool{
	func(item menu.Item, q, _ string) bool {
		return strings.EqualFold(item.Label, q) || strings.EqualFold(item.ID, q) ||
			strings.EqualFold(actionName(item.ID), q)
	},
	func(item menu.Item, _, lower string) bool {
		return strings.HasPrefix(strings.ToLower(item.Label), lower)
	},
	func(item menu.Item, _, lower string) bool {
		return strings.HasPrefix(strings.ToLower(actionName(item.ID)), lower)
	},
	func(item menu.Item, _, lower string) bool {
		return containsFold(item.Label, lower) || containsFold(actionName(item.ID), lower)
	},
}

// BestMatchIndex picks the item the cursor should land on for query.
// Enabled items beat disabled ones in every tier; -1 means items is empty.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return FirstEnabled(items)
	}
	lower := strings.ToLower(q)
	for _, tier := range matchTiers {
		fallback := -1
		for i, item := range items {
			if !tier(item, q, lower) {
				continue
			}
			if !item.Disabled {
				return i
			}
			if fallback < 0 {
				fallback = i
			}
		}
		if fallback >= 0 {
			return fallback
		}
	}
	if best := closestFuzzy(items, q); best >= 0 {
		return best
	}
	return FirstEnabled(items)
}

func closestFuzzy(items []menu.Item, q string) int {
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(q, labelsOf(items)) {
		if rank.OriginalIndex < 0 || rank.OriginalIndex >= len(items) {
			continue
		}
		if items[rank.OriginalIndex].Disabled {
			continue
		}
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	return best
}
