package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/format/table"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

type shortcut struct {
	keys        string
	description string
}

var menuShortcuts = []shortcut{
	{"↑ / ctrl+p", "Previous item"},
	{"↓ / ctrl+n", "Next item"},
	{"pgup / pgdown", "Scroll a page"},
	{"home / end", "First or last item"},
	{"enter / →", "Open submenu or run action"},
	{"← (empty filter)", "Back to the parent menu"},
	{"esc", "Back, or quit at the top level"},
	{"type", "Filter the current menu"},
	{"ctrl+u", "Clear the filter"},
	{"ctrl+w", "Delete the previous word"},
	{"f1", "Show this page"},
	{"ctrl+c", "Quit"},
}

func (m *Model) handleShortcutsMsg(tea.Msg) tea.Cmd {
	m.mode = ModeShortcuts
	events.UI.Dialog("shortcuts", "Keyboard Shortcuts")
	return nil
}

func (m *Model) handleShortcutsKey(key tea.KeyMsg) tea.Cmd {
	if key.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	m.mode = ModeMenu
	return nil
}

func shortcutLines() []string {
	rows := make([][]string, 0, len(menuShortcuts))
	for _, s := range menuShortcuts {
		rows = append(rows, []string{styles.Key.Render(s.keys), s.description})
	}
	return table.Table{Header: []string{"Key", "Action"}, Rows: rows}.Lines()
}

func (m *Model) viewShortcuts(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header, "")
	}
	lines = append(lines, styles.DialogTitle.Render("Keyboard Shortcuts"), "")
	lines = append(lines, shortcutLines()...)
	lines = append(lines, "", styles.Footer.Render("Press any key to close."))
	return strings.Join(lines, "\n")
}

type tourStep struct {
	title string
	body  string
}

var tourSteps = []tourStep{
	{"Welcome", "This menubar drives the notebook open on your Jupyter server. Each top-level entry groups related commands, like the menus of the classic notebook."},
	{"File", "Create, copy, open and rename notebooks. Save checkpoints, restore an earlier one, trust the notebook, or download it in another format."},
	{"Edit", "Cut, copy, paste and delete cells. Split, merge and move them, or edit the notebook metadata in your editor."},
	{"View", "Show or hide the document header and the key hints at the bottom of the menu."},
	{"Insert", "Add a new code cell above or below the selected one."},
	{"Cell", "Run cells, change their type, and show, scroll or clear their output."},
	{"Kernel", "Interrupt, restart or reconnect the kernel behind this notebook."},
	{"Help", "Open this tour again, or list the keys the menubar understands."},
}

func (m *Model) handleTourMsg(tea.Msg) tea.Cmd {
	if !m.tourAvailable {
		m.setInfo("The tour is not available")
		return nil
	}
	m.mode = ModeTour
	m.tourStep = 0
	events.UI.Dialog("tour", tourSteps[0].title)
	return nil
}

func (m *Model) handleTourKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "q":
		m.endTour("Tour ended")
	case "right", "enter", "n", " ":
		if m.tourStep >= len(tourSteps)-1 {
			m.endTour("Tour finished")
			return nil
		}
		m.tourStep++
		events.UI.Dialog("tour", tourSteps[m.tourStep].title)
	case "left", "p":
		if m.tourStep > 0 {
			m.tourStep--
		}
	}
	return nil
}

func (m *Model) endTour(info string) {
	m.mode = ModeMenu
	m.tourStep = 0
	m.setInfo(info)
}

func (m *Model) viewTour(header string) string {
	step := tourSteps[m.tourStep]
	lines := []string{}
	if header != "" {
		lines = append(lines, header, "")
	}
	title := fmt.Sprintf("%s (%d/%d)", step.title, m.tourStep+1, len(tourSteps))
	body := []string{
		styles.DialogTitle.Render(title),
		"",
		styles.DialogBody.Render(wrapText(step.body, m.dialogWidth())),
		"",
		styles.Key.Render("←") + " back   " + styles.Key.Render("→") + " next   " + styles.Key.Render("esc") + " end",
	}
	box := strings.Join(body, "\n")
	if styles.DialogBorder != nil {
		box = styles.DialogBorder.Render(box)
	}
	lines = append(lines, box)
	return strings.Join(lines, "\n")
}
