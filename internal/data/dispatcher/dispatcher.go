package dispatcher

import (
	"time"

	"github.com/atomicstack/notebook-menubar/internal/backend"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
	"github.com/atomicstack/notebook-menubar/internal/state"
)

const (
	trustedLabel     = "Trusted Notebook"
	untrustedLabel   = "Trust Notebook"
	noCheckpointText = "No checkpoints"
)

type Result struct {
	TrustUpdated       bool
	CheckpointsUpdated bool
}

// Restorer opens the restore confirmation for a checkpoint.
type Restorer interface {
	RestoreCheckpointDialog(cp notebook.Checkpoint)
}

type Options struct {
	// Locale is a BCP 47 or POSIX style tag such as "de-DE" or "fr_FR".
	Locale   string
	Location *time.Location
}

// Synchronizer keeps the trust entry and checkpoint submenu in step with
// document events.
type Synchronizer struct {
	trust       state.TrustStore
	checkpoints state.CheckpointStore
	restorer    Restorer
	format      timestampFormat
	location    *time.Location
}

// New builds a synchronizer and renders the empty checkpoint list.
func New(trust state.TrustStore, checkpoints state.CheckpointStore, restorer Restorer, opts Options) *Synchronizer {
	s := &Synchronizer{
		trust:       trust,
		checkpoints: checkpoints,
		restorer:    restorer,
		format:      formatForLocale(opts.Locale),
		location:    opts.Location,
	}
	if s.location == nil {
		s.location = time.Local
	}
	s.OnCheckpointsUpdated(nil)
	return s
}

// Subscribe attaches the synchronizer to the model's events.
func (s *Synchronizer) Subscribe(ev notebook.Events) {
	ev.OnTrustChanged(s.OnTrustChanged)
	ev.OnCheckpointsListed(s.OnCheckpointsUpdated)
	ev.OnCheckpointCreated(s.OnCheckpointsUpdated)
}

func (s *Synchronizer) OnTrustChanged(trusted bool) {
	entry := menu.TrustEntry{Label: untrustedLabel}
	if trusted {
		entry = menu.TrustEntry{Label: trustedLabel, Disabled: true}
	}
	s.trust.SetEntry(entry)
	events.Trust.Changed(trusted)
}

// OnCheckpointsUpdated replaces the rendered checkpoint list wholesale.
func (s *Synchronizer) OnCheckpointsUpdated(checkpoints []notebook.Checkpoint) {
	if len(checkpoints) == 0 {
		s.checkpoints.SetEntries([]menu.CheckpointEntry{{Label: noCheckpointText, Disabled: true}})
		events.Checkpoint.Rendered(0)
		return
	}
	entries := make([]menu.CheckpointEntry, 0, len(checkpoints))
	for _, cp := range checkpoints {
		entries = append(entries, menu.CheckpointEntry{
			ID:       cp.ID,
			Action:   menu.RestoreCheckpointAction(cp.ID),
			Label:    s.label(cp),
			Activate: s.activator(cp),
		})
	}
	s.checkpoints.SetEntries(entries)
	events.Checkpoint.Rendered(len(entries))
}

func (s *Synchronizer) activator(cp notebook.Checkpoint) func() {
	return func() {
		if s.restorer != nil {
			s.restorer.RestoreCheckpointDialog(cp)
		}
	}
}

// Handle applies a backend event to the stores.
func (s *Synchronizer) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindTrust:
		s.OnTrustChanged(evt.Trusted)
		res.TrustUpdated = true
	case backend.KindCheckpointsListed, backend.KindCheckpointCreated:
		s.OnCheckpointsUpdated(evt.Checkpoints)
		res.CheckpointsUpdated = true
	}
	return res
}
