package ui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoProgram is returned by blocking bridge calls made before the UI runs.
var ErrNoProgram = errors.New("ui: program not attached")

// Bridge lets code outside the Bubble Tea loop talk to the menubar. Each
// call posts a message; the model applies it in Update. Bridge implements
// notebook.Dialog, Shell, Layout, Renamer, Tour, QuickHelp and MetadataEditor.
//
// Bridge methods must not be called from Update itself: posting to a running
// program blocks until the loop receives the message.
type Bridge struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

// NewBridge returns a bridge that buffers messages until Attach.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetProgram attaches a running program.
func (b *Bridge) SetProgram(p *tea.Program) {
	b.Attach(p.Send)
}

// Attach routes messages to send. Buffered messages are delivered in order
// on a separate goroutine, since the loop may not be running yet.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()
	if len(pending) == 0 {
		return
	}
	go func() {
		for _, msg := range pending {
			send(msg)
		}
	}()
}

func (b *Bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.pending = append(b.pending, msg)
	}
	b.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

func (b *Bridge) Modal(title, body string) {
	b.post(modalMsg{title: title, body: body})
}

func (b *Bridge) Confirm(title, body, confirmLabel string, onConfirm func()) {
	b.post(confirmMsg{title: title, body: body, label: confirmLabel, onConfirm: onConfirm})
}

// Close quits the menubar.
func (b *Bridge) Close() {
	b.post(closeMsg{})
}

func (b *Bridge) ToggleHeader() {
	b.post(layoutMsg{part: layoutHeader})
}

func (b *Bridge) ToggleToolbar() {
	b.post(layoutMsg{part: layoutToolbar})
}

func (b *Bridge) Resize() {
	b.post(resizeMsg{})
}

func (b *Bridge) RenameDocument() {
	b.post(renamePromptMsg{})
}

func (b *Bridge) Start() {
	b.post(tourMsg{})
}

func (b *Bridge) ShowKeyboardShortcuts() {
	b.post(shortcutsMsg{})
}

// EditMetadata opens current in the user's editor and blocks until it exits.
func (b *Bridge) EditMetadata(current []byte) ([]byte, error) {
	b.mu.Lock()
	attached := b.send != nil
	b.mu.Unlock()
	if !attached {
		return nil, ErrNoProgram
	}
	reply := make(chan editorResult, 1)
	b.post(editMetadataMsg{content: current, reply: reply})
	res := <-reply
	return res.content, res.err
}

type modalMsg struct {
	title string
	body  string
}

type confirmMsg struct {
	title     string
	body      string
	label     string
	onConfirm func()
}

type closeMsg struct{}

type layoutPart string

const (
	layoutHeader  layoutPart = "header"
	layoutToolbar layoutPart = "toolbar"
)

type layoutMsg struct {
	part layoutPart
}

type resizeMsg struct{}

type renamePromptMsg struct{}

type tourMsg struct{}

type shortcutsMsg struct{}

type editorResult struct {
	content []byte
	err     error
}

type editMetadataMsg struct {
	content []byte
	reply   chan<- editorResult
}
