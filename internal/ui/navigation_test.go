package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleEscapeKeyFromRootQuits(t *testing.T) {
	m := newTestModel(t, Options{})
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestHandleEscapeKeyPopsLevelAndRestoresCursor(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	openMenu(t, h, "kernel")
	m := h.Model()
	if len(m.stack) != 2 {
		t.Fatalf("expected kernel level pushed, got %d levels", len(m.stack))
	}
	m.errMsg = "previous error"
	if cmd := m.handleEscapeKey(); cmd != nil {
		t.Fatalf("expected no command when popping a level")
	}
	root := m.currentLevel()
	if root.ID != "root" {
		t.Fatalf("expected root level, got %s", root.ID)
	}
	if item, _ := root.Current(); item.ID != "kernel" {
		t.Fatalf("expected cursor back on kernel, got %q", item.ID)
	}
	if root.LastCursor != -1 {
		t.Fatalf("expected LastCursor reset, got %d", root.LastCursor)
	}
	if m.errMsg != "" {
		t.Fatalf("expected error cleared, got %q", m.errMsg)
	}
}

func TestEnterDispatchesActionAndCollapses(t *testing.T) {
	registry := newFakeRegistry(menu.ActionCutCell)
	h := NewHarness(newTestModel(t, Options{Registry: registry}))
	openMenu(t, h, "edit")
	openMenu(t, h, menu.ActionCutCell)

	if got := registry.calls(); !reflect.DeepEqual(got, []string{menu.ActionCutCell}) {
		t.Fatalf("expected cut-cell dispatched once, got %v", got)
	}
	m := h.Model()
	if len(m.stack) != 1 {
		t.Fatalf("expected menus collapsed to root, got %d levels", len(m.stack))
	}
	if m.loading || m.pendingID != "" {
		t.Fatalf("expected pending state cleared")
	}
}

func TestEnterOnUnboundActionShowsInfo(t *testing.T) {
	registry := newFakeRegistry()
	h := NewHarness(newTestModel(t, Options{Registry: registry}))
	openMenu(t, h, "kernel")
	openMenu(t, h, menu.ActionInterruptKernel)
	if len(registry.calls()) != 0 {
		t.Fatalf("expected nothing dispatched, got %v", registry.calls())
	}
	if info := h.Model().currentInfo(); info != "Nothing bound to Interrupt" {
		t.Fatalf("unexpected info %q", info)
	}
}

func TestSubmenuKeyWinsOverAction(t *testing.T) {
	registry := newFakeRegistry(menu.ActionRestoreCheckpoint)
	h := NewHarness(newTestModel(t, Options{Registry: registry}))
	openMenu(t, h, "file")
	openMenu(t, h, "restore-checkpoint")
	if got := h.Model().currentLevel().ID; got != "file:restore-checkpoint" {
		t.Fatalf("expected checkpoint submenu, got %s", got)
	}
	if len(registry.calls()) != 0 {
		t.Fatalf("expected no dispatch, got %v", registry.calls())
	}
}

func TestDisabledItemShowsInfo(t *testing.T) {
	registry := newFakeRegistry(menu.ActionTrust)
	trust := state.NewTrustStore()
	trust.SetEntry(menu.TrustEntry{Label: "Trusted Notebook", Disabled: true})
	h := NewHarness(newTestModel(t, Options{Registry: registry, Trust: trust}))
	openMenu(t, h, "file")
	openMenu(t, h, menu.ActionTrust)
	if len(registry.calls()) != 0 {
		t.Fatalf("expected disabled item not dispatched, got %v", registry.calls())
	}
	if info := h.Model().currentInfo(); info != "Trusted Notebook is not available" {
		t.Fatalf("unexpected info %q", info)
	}
	if got := registry.reselectCount(); got != 1 {
		t.Fatalf("expected disabled entry to re-select the cell once, got %d", got)
	}
	if got := h.Model().currentLevel().ID; got != "file" {
		t.Fatalf("expected to stay in file menu, got %s", got)
	}
}

func TestCursorSkipsDisabledItems(t *testing.T) {
	m := newTestModel(t, Options{})
	lvl := newLevel("test", "Test", []menu.Item{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B", Disabled: true},
		{ID: "c", Label: "C"},
	}, nil)
	m.stack = append(m.stack, lvl)
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if item, _ := lvl.Current(); item.ID != "c" {
		t.Fatalf("expected cursor on c, got %q", item.ID)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyUp})
	if item, _ := lvl.Current(); item.ID != "a" {
		t.Fatalf("expected cursor on a, got %q", item.ID)
	}
}

func TestCheckpointEntryActivates(t *testing.T) {
	registry := newFakeRegistry()
	checkpoints := state.NewCheckpointStore()
	var activated []string
	checkpoints.SetEntries([]menu.CheckpointEntry{{
		ID:       "cp-1",
		Action:   menu.RestoreCheckpointAction("cp-1"),
		Label:    "Monday",
		Activate: func() { activated = append(activated, "cp-1") },
	}})
	h := NewHarness(newTestModel(t, Options{Registry: registry, Checkpoints: checkpoints}))
	openMenu(t, h, "file")
	openMenu(t, h, "restore-checkpoint")
	openMenu(t, h, menu.RestoreCheckpointAction("cp-1"))
	if !reflect.DeepEqual(activated, []string{"cp-1"}) {
		t.Fatalf("expected checkpoint activated, got %v", activated)
	}
	if len(registry.calls()) != 0 {
		t.Fatalf("expected activation instead of dispatch, got %v", registry.calls())
	}
}

func TestHelpMenuDisablesTourWhenUnavailable(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	openMenu(t, h, "help")
	lvl := h.Model().currentLevel()
	idx := lvl.IndexOf(menu.ActionStartTour)
	if idx < 0 || !lvl.Items[idx].Disabled {
		t.Fatalf("expected disabled tour entry, got %#v", lvl.Items)
	}
	if item, _ := lvl.Current(); item.ID == menu.ActionStartTour {
		t.Fatalf("expected cursor to start past the disabled tour entry")
	}
}

func TestF1OpensShortcuts(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Send(tea.KeyMsg{Type: tea.KeyF1})
	if h.Model().mode != ModeShortcuts {
		t.Fatalf("expected shortcuts mode")
	}
	if view := h.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("expected shortcuts page, got:\n%s", view)
	}
	h.Send(keyRunes("x"))
	if h.Model().mode != ModeMenu {
		t.Fatalf("expected any key to close shortcuts")
	}
}

func TestLeftArrowGoesBackWithoutQuitting(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	openMenu(t, h, "file")
	openMenu(t, h, "download")
	if got := h.Model().currentLevel().ID; got != "file:download" {
		t.Fatalf("expected download submenu, got %s", got)
	}
	h.SendKeys("left")
	if got := h.Model().currentLevel().ID; got != "file" {
		t.Fatalf("expected file menu after left, got %s", got)
	}
	h.SendKeys("left")
	h.SendKeys("left")
	if got := len(h.Model().stack); got != 1 {
		t.Fatalf("expected root to stay open, got %d levels", got)
	}
}

func TestLeftArrowMovesFilterCaretFirst(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	openMenu(t, h, "file")
	h.SendKeys("sav", "left")
	lvl := h.Model().currentLevel()
	if lvl.ID != "file" || lvl.FilterCursorPos() != 2 {
		t.Fatalf("expected caret moved inside the file filter, got %s at %d", lvl.ID, lvl.FilterCursorPos())
	}
}
