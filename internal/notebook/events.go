package notebook

import "sync"

// Events is the typed subscription surface for model lifecycle events.
type Events interface {
	OnTrustChanged(func(trusted bool))
	OnCheckpointsListed(func(checkpoints []Checkpoint))
	OnCheckpointCreated(func(checkpoints []Checkpoint))
}

// Bus is the in-process Events implementation. Handlers run synchronously on
// the emitting goroutine, in subscription order.
type Bus struct {
	mu      sync.RWMutex
	trust   []func(bool)
	listed  []func([]Checkpoint)
	created []func([]Checkpoint)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnTrustChanged(fn func(trusted bool)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.trust = append(b.trust, fn)
	b.mu.Unlock()
}

func (b *Bus) OnCheckpointsListed(fn func(checkpoints []Checkpoint)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.listed = append(b.listed, fn)
	b.mu.Unlock()
}

func (b *Bus) OnCheckpointCreated(fn func(checkpoints []Checkpoint)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.created = append(b.created, fn)
	b.mu.Unlock()
}

// EmitTrustChanged notifies trust-changed subscribers.
func (b *Bus) EmitTrustChanged(trusted bool) {
	b.mu.RLock()
	handlers := append(([]func(bool))(nil), b.trust...)
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(trusted)
	}
}

// EmitCheckpointsListed notifies checkpoints-listed subscribers.
func (b *Bus) EmitCheckpointsListed(checkpoints []Checkpoint) {
	b.mu.RLock()
	handlers := append(([]func([]Checkpoint))(nil), b.listed...)
	b.mu.RUnlock()
	emitCheckpoints(handlers, checkpoints)
}

// EmitCheckpointCreated notifies checkpoint-created subscribers.
func (b *Bus) EmitCheckpointCreated(checkpoints []Checkpoint) {
	b.mu.RLock()
	handlers := append(([]func([]Checkpoint))(nil), b.created...)
	b.mu.RUnlock()
	emitCheckpoints(handlers, checkpoints)
}

// each handler gets its own copy so none can mutate what the next one sees.
func emitCheckpoints(handlers []func([]Checkpoint), checkpoints []Checkpoint) {
	for _, fn := range handlers {
		fn(CloneCheckpoints(checkpoints))
	}
}
