package ui

import (
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const menuFooterText = "↑/↓ move  enter select  backspace clear  esc back  f1 keys  ctrl+c quit"

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	if len(m.dialogs) > 0 {
		return m.viewDialog(header)
	}
	switch m.mode {
	case ModeRenameForm:
		if m.renameForm != nil {
			return m.viewRenameFormWithHeader(header)
		}
	case ModeShortcuts:
		return m.viewShortcuts(header)
	case ModeTour:
		return m.viewTour(header)
	}
	return m.viewMenu(header)
}

func (m *Model) viewMenu(header string) string {
	lines := make([]styledLine, 0, 16)
	if doc, ok := m.documentLine(); ok {
		lines = append(lines, styledLine{text: doc, raw: true})
	}
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
		start, end := visibleWindow(current, m.maxVisibleItems())
		displayItems := current.Items[start:end]
		if len(current.Items) == 0 {
			msg := "(no entries)"
			if current.Filter != "" {
				msg = fmt.Sprintf("No matches for %q", current.Filter)
			}
			lines = append(lines, styledLine{text: msg, style: styles.Info})
		} else {
			for i, item := range displayItems {
				lines = append(lines, m.buildItemLine(item.Label, item.Disabled, start+i, current))
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: menuFooterText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2)
	lines = applyWidth(lines, m.width)

	bottomLines := []styledLine{m.statusLine()}
	bottomLines = append(bottomLines, styledLine{text: m.filterPrompt(), raw: true})
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// statusLine shows, in order of precedence, the last action error, a
// backend problem, or the action still running.
func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if issue, msg := m.hasBackendIssue(); issue {
		return styledLine{text: fmt.Sprintf("Sync: %s", msg), style: styles.Error}
	}
	if m.loading && m.pendingLabel != "" {
		return styledLine{text: fmt.Sprintf("Running %s…", m.pendingLabel), style: styles.Loading}
	}
	return styledLine{}
}

// documentLine renders the notebook name, trust badge, selected cell and
// kernel. It is hidden with the header.
func (m *Model) documentLine() (string, bool) {
	if !m.showHeader || m.doc == nil {
		return "", false
	}
	sum := m.doc.Summary()
	name := path.Base(sum.Path)
	if sum.Path == "" {
		name = "Untitled"
	}
	parts := []string{styles.Document.Render(name)}
	if sum.Dirty {
		parts[0] += styles.Dirty.Render("*")
	}
	if sum.Trusted {
		parts = append(parts, styles.Trusted.Render("Trusted"))
	} else {
		parts = append(parts, styles.Untrusted.Render("Not Trusted"))
	}
	if sum.Count > 0 {
		parts = append(parts, styles.Info.Render(fmt.Sprintf("cell %d/%d [%s]", sum.Selected+1, sum.Count, sum.CellType)))
	} else {
		parts = append(parts, styles.Info.Render("no cells"))
	}
	kernel := sum.Kernel
	if kernel == "" {
		kernel = "No Kernel"
	}
	parts = append(parts, styles.Info.Render(kernel))
	return strings.Join(parts, "  "), true
}

// visibleWindow returns the slice bounds of the items that fit in max
// rows starting at the level's viewport offset.
func visibleWindow(l *level, max int) (int, int) {
	n := len(l.Items)
	if max <= 0 || n <= max {
		return 0, n
	}
	start := l.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start > n-max {
		start = n - max
		l.ViewportOffset = start
	}
	return start, start + max
}

func (m *Model) buildItemLine(label string, disabled bool, idx int, current *level) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if disabled && styles.DisabledItem != nil {
		lineStyle = styles.DisabledItem
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	return styledLine{
		text:        padRight(indicator+" "+label, m.width),
		style:       lineStyle,
		prefixStyle: indicatorStyle,
		prefixLen:   1,
	}
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	if depth == 1 {
		return []string{root}
	}
	segments := make([]string, 0, depth)
	if m.rootMenuID != "" {
		segments = append(segments, root)
	}
	for i := 1; i < depth; i++ {
		if segment := headerSegmentForLevel(m.stack[i]); segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return []string{root}
	}
	return segments
}

// headerSegmentForLevel prefers the level title; untitled levels fall back
// to the last part of their node id.
func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	if title := strings.TrimSpace(l.Title); title != "" {
		return title
	}
	candidate := strings.TrimSpace(l.ID)
	if idx := strings.LastIndex(candidate, ":"); idx >= 0 {
		candidate = candidate[idx+1:]
	}
	fields := strings.Fields(strings.ToLower(headerSegmentCleaner.Replace(candidate)))
	return strings.Join(fields, " ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // status line + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if m.showHeader && m.doc != nil {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}
