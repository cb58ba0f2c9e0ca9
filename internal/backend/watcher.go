package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// listGap is the minimum spacing between two checkpoint listings.
const listGap = 250 * time.Millisecond

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTrust Kind = iota
	KindCheckpointsListed
	KindCheckpointCreated
)

func (k Kind) String() string {
	switch k {
	case KindTrust:
		return "trust"
	case KindCheckpointsListed:
		return "checkpoints-listed"
	case KindCheckpointCreated:
		return "checkpoint-created"
	default:
		return "unknown"
	}
}

// Event conveys a model change or an error from a backend poll.
type Event struct {
	Kind        Kind
	Trusted     bool
	Checkpoints []notebook.Checkpoint
	Err         error
}

// CheckpointLister refreshes the checkpoint list. Results arrive through the
// model's checkpoints-listed event.
type CheckpointLister interface {
	ListCheckpoints(ctx context.Context) error
}

// Watcher forwards model events onto a channel and periodically asks the
// model to re-list its checkpoints.
type Watcher struct {
	lister   CheckpointLister
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher subscribes to source and, when lister is non-nil and interval
// is positive, polls for checkpoints every interval.
func NewWatcher(source notebook.Events, lister CheckpointLister, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		lister:   lister,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	if source != nil {
		source.OnTrustChanged(func(trusted bool) {
			w.emit(Event{Kind: KindTrust, Trusted: trusted})
		})
		source.OnCheckpointsListed(func(checkpoints []notebook.Checkpoint) {
			w.emit(Event{Kind: KindCheckpointsListed, Checkpoints: checkpoints})
		})
		source.OnCheckpointCreated(func(checkpoints []notebook.Checkpoint) {
			w.emit(Event{Kind: KindCheckpointCreated, Checkpoints: checkpoints})
		})
	}

	if lister != nil && interval > 0 {
		w.startCheckpointPoller()
	}

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited, then closes the events channel.
// Call after Stop.
func (w *Watcher) Wait() {
	w.wg.Wait()
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
	w.mu.Unlock()
}

// emit delivers evt unless the watcher has stopped. Model events fire on
// whichever goroutine changed the model, so the send holds the read lock
// to keep Wait from closing the channel underneath it.
func (w *Watcher) emit(evt Event) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) startCheckpointPoller() {
	pace := newPacer(listGap)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) error {
		if err := pace.wait(ctx); err != nil {
			return nil
		}
		return w.lister.ListCheckpoints(ctx)
	})
}

func (w *Watcher) poll(fetch func(context.Context) error) {
	defer w.wg.Done()

	refresh := func() bool {
		if err := fetch(w.ctx); err != nil {
			return w.emit(Event{Kind: KindCheckpointsListed, Err: err})
		}
		return w.ctx.Err() == nil
	}

	if !refresh() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !refresh() {
				return
			}
		}
	}
}
