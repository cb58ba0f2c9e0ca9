package ui

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
	got  chan struct{}
}

func newSink() *sink {
	return &sink{got: make(chan struct{}, 16)}
}

func (s *sink) send(msg tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	s.got <- struct{}{}
}

func (s *sink) wait(t *testing.T, n int) []tea.Msg {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.got:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", i+1)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tea.Msg(nil), s.msgs...)
}

func TestBridgeBuffersUntilAttach(t *testing.T) {
	b := NewBridge()
	b.Modal("Saving Failed", "disk full")
	b.ToggleHeader()

	s := newSink()
	b.Attach(s.send)
	msgs := s.wait(t, 2)
	if modal, ok := msgs[0].(modalMsg); !ok || modal.title != "Saving Failed" {
		t.Fatalf("expected buffered modal first, got %#v", msgs[0])
	}
	if layout, ok := msgs[1].(layoutMsg); !ok || layout.part != layoutHeader {
		t.Fatalf("expected header toggle second, got %#v", msgs[1])
	}
}

func TestBridgePostsAfterAttach(t *testing.T) {
	b := NewBridge()
	s := newSink()
	b.Attach(s.send)

	b.Confirm("Restart kernel?", "", "Restart", func() {})
	b.ToggleToolbar()
	b.Resize()
	b.RenameDocument()
	b.Start()
	b.ShowKeyboardShortcuts()
	b.Close()
	msgs := s.wait(t, 7)

	if confirm, ok := msgs[0].(confirmMsg); !ok || confirm.label != "Restart" || confirm.onConfirm == nil {
		t.Fatalf("unexpected confirm %#v", msgs[0])
	}
	if layout, ok := msgs[1].(layoutMsg); !ok || layout.part != layoutToolbar {
		t.Fatalf("unexpected toolbar toggle %#v", msgs[1])
	}
	for i, want := range []tea.Msg{resizeMsg{}, renamePromptMsg{}, tourMsg{}, shortcutsMsg{}, closeMsg{}} {
		if msgs[i+2] != want {
			t.Fatalf("message %d: expected %T, got %#v", i+2, want, msgs[i+2])
		}
	}
}

func TestBridgeEditMetadataWithoutProgram(t *testing.T) {
	b := NewBridge()
	if _, err := b.EditMetadata([]byte("{}")); !errors.Is(err, ErrNoProgram) {
		t.Fatalf("expected ErrNoProgram, got %v", err)
	}
}

func TestBridgeEditMetadataWaitsForReply(t *testing.T) {
	b := NewBridge()
	b.Attach(func(msg tea.Msg) {
		req, ok := msg.(editMetadataMsg)
		if !ok {
			return
		}
		go func() {
			req.reply <- editorResult{content: append([]byte("edited:"), req.content...)}
		}()
	})
	out, err := b.EditMetadata([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "edited:{}" {
		t.Fatalf("unexpected content %q", out)
	}
}
