package ui

import (
	"unicode"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	filterPromptMark  = "» "
	filterPlaceholder = "(type to filter commands)"
)

// filterEdit is one editing key. Edits change the query and reset the
// status lines; moves only shift the caret.
type filterEdit struct {
	apply func(*level) bool
	trace func(*level)
	edits bool
}

var filterKeys = map[string]filterEdit{
	"ctrl+w": {
		apply: (*level).DeleteFilterWordBackward,
		trace: func(l *level) { events.Filter.WordBackspace(l.ID, l.Filter) },
		edits: true,
	},
	"backspace": {
		apply: (*level).DeleteFilterRuneBackward,
		trace: func(l *level) { events.Filter.Backspace(l.ID, l.Filter) },
		edits: true,
	},
	"ctrl+h": {
		apply: (*level).DeleteFilterRuneBackward,
		trace: func(l *level) { events.Filter.Backspace(l.ID, l.Filter) },
		edits: true,
	},
	"ctrl+a":    {apply: (*level).MoveFilterCursorStart, trace: traceFilterCursor},
	"ctrl+e":    {apply: (*level).MoveFilterCursorEnd, trace: traceFilterCursor},
	"left":      {apply: (*level).MoveFilterCursorRuneBackward, trace: traceFilterCursor},
	"right":     {apply: (*level).MoveFilterCursorRuneForward, trace: traceFilterCursor},
	"alt+b":     {apply: (*level).MoveFilterCursorWordBackward, trace: traceFilterWord},
	"alt+left":  {apply: (*level).MoveFilterCursorWordBackward, trace: traceFilterWord},
	"alt+f":     {apply: (*level).MoveFilterCursorWordForward, trace: traceFilterWord},
	"alt+right": {apply: (*level).MoveFilterCursorWordForward, trace: traceFilterWord},
}

func traceFilterCursor(l *level) { events.Filter.Cursor(l.ID, l.FilterCursor) }
func traceFilterWord(l *level)   { events.Filter.CursorWord(l.ID, l.FilterCursor) }

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// handleTextInput routes editing keys to the filter of the open menu.
// It reports false for keys the filter does not use, so navigation can
// take them.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	key := msg.String()
	if key == "ctrl+u" {
		if current.Filter == "" {
			return false
		}
		return m.editFilter(current, func(l *level) bool {
			l.SetFilter("", 0)
			return true
		}, func(l *level) { events.Filter.Cleared(l.ID) }, true)
	}
	if edit, ok := filterKeys[key]; ok {
		return m.editFilter(current, edit.apply, edit.trace, edit.edits)
	}
	switch msg.Type {
	case tea.KeySpace:
		return m.insertFilterText(current, " ")
	case tea.KeyRunes:
		if msg.Alt || !printable(msg.Runes) {
			return false
		}
		return m.insertFilterText(current, string(msg.Runes))
	}
	return false
}

// printable rejects empty input, control runes and pasted whitespace so
// that space-bound shortcuts keep working.
func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (m *Model) insertFilterText(current *level, text string) bool {
	return m.editFilter(current, func(l *level) bool {
		return l.InsertFilterText(text)
	}, func(l *level) { events.Filter.Append(l.ID, l.Filter) }, true)
}

// editFilter applies one filter change and keeps the caret and viewport
// in step with it.
func (m *Model) editFilter(current *level, apply func(*level) bool, trace func(*level), edits bool) bool {
	before := current.FilterCursorPos()
	if !apply(current) {
		return false
	}
	if before != current.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	if edits {
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(current)
	}
	if trace != nil {
		trace(current)
	}
	return true
}

// filterPrompt renders the query with the caret over the rune at the
// cursor, or over the first rune of the placeholder when empty.
func (m *Model) filterPrompt() string {
	prompt := renderWith(styles.FilterPrompt, filterPromptMark)
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}

	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	if current.Filter == "" {
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		runes := []rune(filterPlaceholder)
		return prompt + m.renderFilterCursor(string(runes[0])) +
			renderWith(styles.FilterPlaceholder, string(runes[1:]))
	}

	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	under, after := " ", ""
	if pos < len(runes) {
		under = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + renderWith(styles.Filter, string(runes[:pos])) +
		m.renderFilterCursor(under) + renderWith(styles.Filter, after)
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// renderFilterCursor draws char as the caret. While the cursor is in its
// off phase the character is drawn in the text style alone.
func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return base.Reverse(true).Render(char)
	}
}
