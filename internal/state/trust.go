package state

import (
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/menu"
)

type TrustStore interface {
	Entry() menu.TrustEntry
	SetEntry(menu.TrustEntry)
}

type trustStore struct {
	mu    sync.RWMutex
	entry menu.TrustEntry
}

func NewTrustStore() TrustStore {
	return &trustStore{entry: menu.TrustEntry{Label: "Trust Notebook"}}
}

func (s *trustStore) Entry() menu.TrustEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entry
}

func (s *trustStore) SetEntry(entry menu.TrustEntry) {
	s.mu.Lock()
	s.entry = entry
	s.mu.Unlock()
}
