package ui

import (
	"context"
	"sync"
	"testing"

	"github.com/atomicstack/notebook-menubar/internal/document"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeRegistry struct {
	mu         sync.Mutex
	bound      map[string]bool
	dispatched []string
	reselects  int
}

func newFakeRegistry(ids ...string) *fakeRegistry {
	r := &fakeRegistry{bound: map[string]bool{}}
	for _, id := range ids {
		r.bound[id] = true
	}
	return r
}

func (r *fakeRegistry) Has(action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound[action]
}

func (r *fakeRegistry) Dispatch(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched = append(r.dispatched, action)
}

func (r *fakeRegistry) Reselect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reselects++
}

func (r *fakeRegistry) reselectCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reselects
}

func (r *fakeRegistry) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.dispatched...)
}

type fakeDocument struct {
	summary document.Summary
}

func (d *fakeDocument) Summary() document.Summary {
	return d.summary
}

type recordedRestore struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordedRestore) RestoreCheckpointDialog(cp notebook.Checkpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, cp.ID)
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Document == nil {
		opts.Document = &fakeDocument{summary: document.Summary{
			Path:     "work/analysis.ipynb",
			Count:    3,
			Selected: 1,
			CellType: notebook.CellCode,
			Kernel:   "python3",
		}}
	}
	return NewModel(opts)
}

func renameRecorder(names *[]string, err error) RenameFunc {
	return func(_ context.Context, name string) error {
		*names = append(*names, name)
		return err
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// openMenu moves the cursor of the current level to id and presses enter.
func openMenu(t *testing.T, h *Harness, id string) {
	t.Helper()
	current := h.Model().currentLevel()
	idx := current.IndexOf(id)
	if idx < 0 {
		t.Fatalf("expected %q in level %s, items %#v", id, current.ID, current.Items)
	}
	current.Cursor = idx
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
}
