package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness feeds messages through a Model and runs the commands it returns
// synchronously, so a test can drive a whole menu flow with Send and then
// inspect the model or its view.
type Harness struct {
	model *Model
	sent  []tea.Msg
}

// NewHarness wraps model. The filter caret is pinned so no blink timers
// enter the command chain.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.filterCursor.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model}
}

// Send delivers msg and then every message produced by the resulting
// commands, depth first, until the chain goes quiet.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

// SendKeys sends each key in order, as a key name ("enter", "esc") or as
// typed runes.
func (h *Harness) SendKeys(keys ...string) {
	for _, k := range keys {
		h.Send(keyMsgFor(k))
	}
}

func keyMsgFor(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *Harness) deliver(msg tea.Msg) {
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			if cmd != nil {
				h.deliver(cmd())
			}
		}
		return
	}
	h.sent = append(h.sent, msg)
	next, cmd := h.model.Update(msg)
	if updated, ok := next.(*Model); ok {
		h.model = updated
	}
	if cmd != nil {
		h.deliver(cmd())
	}
}

// Delivered returns every message Update has seen, in order, including
// those produced by commands.
func (h *Harness) Delivered() []tea.Msg {
	return append([]tea.Msg(nil), h.sent...)
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
