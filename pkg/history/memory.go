package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Save stores a copy of the record.
func (m *MemoryStore) Save(_ context.Context, record *Record) error {
	ensureID(record)

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *record
	stored.Errors = append([]string(nil), record.Errors...)
	m.records[record.ID] = &stored
	return nil
}

// Get returns a copy of the record with the given ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *record
	return &out, nil
}

// List returns matching records, newest first.
func (m *MemoryStore) List(_ context.Context, query *Query) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Record
	for _, record := range m.records {
		if !matches(record, query) {
			continue
		}
		r := *record
		out = append(out, &r)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})

	if limit := query.limit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Cleanup deletes records started before olderThan.
func (m *MemoryStore) Cleanup(_ context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for id, record := range m.records {
		if record.StartedAt.Before(olderThan) {
			delete(m.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

func matches(record *Record, query *Query) bool {
	if query == nil {
		return true
	}
	if query.Workspace != "" && record.Workspace != query.Workspace {
		return false
	}
	if query.Passed != nil && record.Passed != *query.Passed {
		return false
	}
	if !query.Since.IsZero() && record.StartedAt.Before(query.Since) {
		return false
	}
	return true
}
