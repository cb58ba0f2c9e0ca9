package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHarnessTypesFilterAndOpensMenu(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.SendKeys("kern", "enter")

	m := h.Model()
	if len(m.stack) != 2 || m.currentLevel().ID != "kernel" {
		t.Fatalf("expected kernel menu open, got %d levels", len(m.stack))
	}
	if root := m.stack[0]; root.Filter != "" {
		t.Fatalf("expected root filter cleared on enter, got %q", root.Filter)
	}

	var loaded bool
	for _, msg := range h.Delivered() {
		if _, ok := msg.(categoryLoadedMsg); ok {
			loaded = true
		}
	}
	if !loaded {
		t.Fatalf("expected the loader result to be fed back through Update")
	}
}

func TestHarnessUnrollsBatches(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Send(tea.BatchMsg{
		func() tea.Msg { return layoutMsg{part: layoutToolbar} },
		nil,
		func() tea.Msg { return layoutMsg{part: layoutHeader} },
	})
	m := h.Model()
	if !m.showFooter || m.showHeader {
		t.Fatalf("expected both layout toggles applied, footer=%v header=%v", m.showFooter, m.showHeader)
	}
	if got := len(h.Delivered()); got != 2 {
		t.Fatalf("expected two delivered messages, got %d", got)
	}
}

func TestHarnessKeyNames(t *testing.T) {
	if k := keyMsgFor("esc"); k.Type != tea.KeyEsc {
		t.Fatalf("expected esc key, got %v", k.Type)
	}
	if k := keyMsgFor("ab"); k.Type != tea.KeyRunes || string(k.Runes) != "ab" {
		t.Fatalf("expected runes, got %#v", k)
	}
}
