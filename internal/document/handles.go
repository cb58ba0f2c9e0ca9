package document

import (
	"context"

	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// Session returns the live session, or nil before one is started.
func (d *Document) Session() notebook.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil || d.kernels == nil {
		return nil
	}
	return &sessionHandle{doc: d, id: d.session.ID}
}

// Kernel returns the live kernel, or nil before a session is started.
func (d *Document) Kernel() notebook.Kernel {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil || d.kernels == nil {
		return nil
	}
	return &kernelHandle{doc: d, id: d.session.Kernel.ID}
}

type sessionHandle struct {
	doc *Document
	id  string
}

// Delete ends the session and drops the kernel channel.
func (s *sessionHandle) Delete(ctx context.Context) error {
	err := s.doc.kernels.DeleteSession(ctx, s.id)
	if closeErr := s.doc.Close(); closeErr != nil {
		logging.Error(closeErr)
	}
	s.doc.mu.Lock()
	if s.doc.session != nil && s.doc.session.ID == s.id {
		s.doc.session = nil
	}
	s.doc.mu.Unlock()
	return err
}

type kernelHandle struct {
	doc *Document
	id  string
}

func (k *kernelHandle) Interrupt() {
	if err := k.doc.kernels.InterruptKernel(k.doc.ctx, k.id); err != nil {
		logging.Error(err)
		k.doc.modal("Kernel Error", "The error was: "+err.Error())
	}
}

func (k *kernelHandle) Reconnect() {
	k.doc.mu.Lock()
	channel := k.doc.channel
	k.doc.mu.Unlock()
	if channel == nil {
		events.Kernel.Op("reconnect", k.id, nil)
		return
	}
	if err := channel.Reconnect(); err != nil {
		logging.Error(err)
		k.doc.modal("Kernel Error", "Reconnecting failed: "+err.Error())
	}
}
