package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.currentLevel() == nil || len(m.stack) <= 1 {
		return tea.Quit
	}
	m.back()
	return nil
}

// back closes the open submenu. At the root it does nothing.
func (m *Model) back() {
	if len(m.stack) <= 1 {
		return
	}
	m.popLevel()
	m.errMsg = ""
	m.forceClearInfo()
}

// popLevel drops the top level and puts the parent's cursor back on the
// entry that opened it.
func (m *Model) popLevel() {
	if len(m.stack) <= 1 {
		return
	}
	current := m.stack[len(m.stack)-1]
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	switch {
	case parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items):
		parent.Cursor = parent.LastCursor
	case parent.IndexOf(current.ID) >= 0:
		parent.Cursor = parent.IndexOf(current.ID)
	}
	parent.LastCursor = -1
	m.syncViewport(parent)
}

func (m *Model) collapseToRoot() {
	for len(m.stack) > 1 {
		m.popLevel()
	}
}

// handleEnterKey opens the submenu under the cursor or runs its action.
// The filter is cleared first so the cursor lands on the chosen entry in
// the full list.
func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	if current.FilterCursorPos() != 0 {
		m.filterCursorDirty = true
	}
	current.SetFilter("", 0)
	if idx := current.IndexOf(item.ID); idx >= 0 {
		current.Cursor = idx
	}
	if item.Disabled {
		m.setInfo(fmt.Sprintf("%s is not available", item.Label))
		return m.bus.Reselect()
	}
	m.errMsg = ""
	m.forceClearInfo()
	m.loading = true
	m.pendingLabel = item.Label
	if child := submenuOf(current, item.ID); child != nil {
		current.LastCursor = current.Cursor
		m.pendingID = child.ID
		return m.loadMenuCmd(child.ID, item.Label, child.Loader)
	}
	m.pendingID = item.ID
	return m.bus.Execute(command.Request{ID: item.ID, Label: item.Label, Item: item})
}

// submenuOf returns the loadable child of l named id. A submenu key takes
// precedence over an action with the same id.
func submenuOf(l *level, id string) *menu.Node {
	if l.Node == nil {
		return nil
	}
	child, ok := l.Node.Children[id]
	if !ok || child.Loader == nil {
		return nil
	}
	return child
}

// cursorKeys maps navigation keys to cursor moves. page is the number of
// rows the viewport shows.
var cursorKeys = map[string]func(l *level, page int) bool{
	"up":     func(l *level, _ int) bool { return l.MoveCursor(-1) },
	"ctrl+p": func(l *level, _ int) bool { return l.MoveCursor(-1) },
	"down":   func(l *level, _ int) bool { return l.MoveCursor(1) },
	"ctrl+n": func(l *level, _ int) bool { return l.MoveCursor(1) },
	"pgup":   (*level).MoveCursorPageUp,
	"pgdown": (*level).MoveCursorPageDown,
	"home":   func(l *level, _ int) bool { return l.MoveCursorHome() },
	"end":    func(l *level, _ int) bool { return l.MoveCursorEnd() },
}

func (m *Model) moveCursor(move func(l *level, page int) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current, m.maxVisibleItems()) {
		events.UI.MenuCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.mode != ModeMenu {
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	key := keyMsg.String()
	if move, ok := cursorKeys[key]; ok {
		m.moveCursor(move)
		return nil
	}
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "left":
		m.back()
	case "enter", "right":
		return m.handleEnterKey()
	case "f1":
		return m.handleShortcutsMsg(shortcutsMsg{})
	}
	return nil
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.tree.Find(update.id)
	level := newLevel(update.id, update.title, update.items, node)
	m.syncViewport(level)
	m.stack = append(m.stack, level)
	if len(level.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.info.text != "" {
		m.clearInfo()
	}
	return nil
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			return lvl
		}
	}
	return nil
}

// applyRootMenuOverride opens a submenu such as "cell" or "file:download"
// as the root level.
func (m *Model) applyRootMenuOverride(requested string) {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}
	id := strings.ToLower(trimmed)
	node, ok := m.tree.Find(id)
	if !ok || id == "root" {
		if !ok {
			m.errMsg = fmt.Sprintf("Unknown root menu %q", trimmed)
		}
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}

	ctx := m.menuContext()
	items, err := node.Loader(ctx)
	if err != nil {
		logging.Error(err)
		m.errMsg = fmt.Sprintf("Failed to load %s menu: %v", id, err)
		items = nil
	} else {
		m.errMsg = ""
	}

	title := m.tree.Title(ctx, node.ID)
	root := newLevel(node.ID, title, items, node)
	m.syncViewport(root)
	m.stack = []*level{root}
	m.rootMenuID = node.ID
	m.rootTitle = title
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// refreshLevels reloads every open level from its loader so labels that
// depend on model state stay current.
func (m *Model) refreshLevels() {
	ctx := m.menuContext()
	for _, lvl := range m.stack {
		if lvl.Node == nil || lvl.Node.Loader == nil {
			continue
		}
		items, err := lvl.Node.Loader(ctx)
		if err != nil {
			logging.Error(err)
			continue
		}
		lvl.UpdateItems(items)
		m.syncViewport(lvl)
	}
}
