package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/notebook-menubar/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleTextInputAppendsRunes(t *testing.T) {
	m := newTestModel(t, Options{})
	current := m.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	if !m.handleTextInput(keyRunes("abc")) {
		t.Fatalf("expected key press to be handled")
	}
	if current.Filter != "abc" {
		t.Fatalf("expected filter 'abc', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	m := newTestModel(t, Options{})
	current := m.currentLevel()
	current.SetFilter("abc", 3)

	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}) {
		t.Fatalf("expected left arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 2 {
		t.Fatalf("expected cursor at 2 after left, got %d", pos)
	}
	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}) {
		t.Fatalf("expected right arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor back at 3, got %d", pos)
	}
}

func TestFilterNarrowsRootMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	current := m.currentLevel()
	m.handleTextInput(keyRunes("kern"))
	if len(current.Items) != 1 || current.Items[0].ID != "kernel" {
		t.Fatalf("expected only kernel to match, got %#v", current.Items)
	}
	if !m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU}) {
		t.Fatalf("expected ctrl+u to clear the filter")
	}
	if len(current.Items) != len(menu.RootItems()) {
		t.Fatalf("expected full root menu after clearing, got %d items", len(current.Items))
	}
}

func TestTextInputIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t, Options{})
	m.loading = true
	if m.handleTextInput(keyRunes("a")) {
		t.Fatalf("expected input ignored while an action runs")
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m := newTestModel(t, Options{})
	prompt := m.filterPrompt()
	if !strings.Contains(prompt, "type to filter") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}
