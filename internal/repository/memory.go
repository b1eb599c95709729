package repository

import (
	"context"
	"sync"

	"familytree/internal/domain/event"
)

// NopPublisher drops events; used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishTreeChanged(context.Context, event.TreeEvent) error { return nil }

// MemoryJournal keeps the audit trail in process; used when Mongo is not configured.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []event.JournalEntry
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (m *MemoryJournal) Append(_ context.Context, entry event.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryJournal) Recent(_ context.Context, sessionID string, limit int64) ([]event.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]event.JournalEntry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		if limit > 0 && int64(len(result)) >= limit {
			break
		}
		if m.entries[i].SessionID == sessionID {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}
