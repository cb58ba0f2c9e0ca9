package ui

import (
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"
)

type dialogKind int

const (
	dialogModal dialogKind = iota
	dialogConfirm
)

func (k dialogKind) String() string {
	if k == dialogConfirm {
		return "confirm"
	}
	return "modal"
}

// dialog is one queued message box. Dialogs show one at a time, oldest first.
type dialog struct {
	kind      dialogKind
	title     string
	body      string
	label     string
	onConfirm func()
}

func (m *Model) pushDialog(d dialog) {
	m.dialogs = append(m.dialogs, d)
	events.UI.Dialog(d.kind.String(), d.title)
}

func (m *Model) popDialog() (dialog, bool) {
	if len(m.dialogs) == 0 {
		return dialog{}, false
	}
	d := m.dialogs[0]
	m.dialogs = m.dialogs[1:]
	return d, true
}

func (m *Model) handleModalMsg(msg tea.Msg) tea.Cmd {
	modal, ok := msg.(modalMsg)
	if !ok {
		return nil
	}
	m.pushDialog(dialog{kind: dialogModal, title: modal.title, body: modal.body})
	return nil
}

func (m *Model) handleConfirmMsg(msg tea.Msg) tea.Cmd {
	confirm, ok := msg.(confirmMsg)
	if !ok {
		return nil
	}
	label := strings.TrimSpace(confirm.label)
	if label == "" {
		label = "OK"
	}
	m.pushDialog(dialog{
		kind:      dialogConfirm,
		title:     confirm.title,
		body:      confirm.body,
		label:     label,
		onConfirm: confirm.onConfirm,
	})
	return nil
}

// handleDialogKey answers the front dialog. A confirmed callback runs as a
// command, off the UI goroutine, since it usually talks to the server.
func (m *Model) handleDialogKey(key tea.KeyMsg) tea.Cmd {
	if key.String() == "ctrl+c" {
		return tea.Quit
	}
	front := m.dialogs[0]
	if front.kind == dialogModal {
		switch key.String() {
		case "enter", "esc", " ", "q":
			m.popDialog()
			events.UI.DialogAnswer(front.title, true)
		}
		return nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		m.popDialog()
		events.UI.DialogAnswer(front.title, true)
		if front.onConfirm == nil {
			return nil
		}
		run := front.onConfirm
		return func() tea.Msg {
			run()
			return nil
		}
	case "n", "N", "esc":
		m.popDialog()
		events.UI.DialogAnswer(front.title, false)
	}
	return nil
}

func (m *Model) viewDialog(header string) string {
	d := m.dialogs[0]
	lines := []string{}
	if header != "" {
		lines = append(lines, header, "")
	}
	body := []string{styles.DialogTitle.Render(d.title)}
	if d.body != "" {
		body = append(body, "", styles.DialogBody.Render(wrapText(d.body, m.dialogWidth())))
	}
	body = append(body, "")
	if d.kind == dialogConfirm {
		body = append(body, styles.Key.Render("y")+" "+d.label+"   "+styles.Key.Render("n")+" Cancel")
	} else {
		body = append(body, styles.Key.Render("enter")+" OK")
	}
	box := strings.Join(body, "\n")
	if styles.DialogBorder != nil {
		box = styles.DialogBorder.Render(box)
	}
	lines = append(lines, box)
	if more := len(m.dialogs) - 1; more > 0 {
		lines = append(lines, styles.Info.Render(english.Plural(more, "more message", "more messages")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) dialogWidth() int {
	w := m.width - 4
	if w <= 0 || w > 72 {
		return 72
	}
	if w < 20 {
		return 20
	}
	return w
}
