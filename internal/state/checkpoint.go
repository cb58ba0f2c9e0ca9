package state

import (
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/menu"
)

type CheckpointStore interface {
	Entries() []menu.CheckpointEntry
	SetEntries([]menu.CheckpointEntry)
}

type checkpointStore struct {
	mu      sync.RWMutex
	entries []menu.CheckpointEntry
}

func NewCheckpointStore() CheckpointStore {
	return &checkpointStore{}
}

func (s *checkpointStore) Entries() []menu.CheckpointEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCheckpointEntries(s.entries)
}

func (s *checkpointStore) SetEntries(entries []menu.CheckpointEntry) {
	s.mu.Lock()
	s.entries = cloneCheckpointEntries(entries)
	s.mu.Unlock()
}

func cloneCheckpointEntries(entries []menu.CheckpointEntry) []menu.CheckpointEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]menu.CheckpointEntry, len(entries))
	copy(dup, entries)
	return dup
}
