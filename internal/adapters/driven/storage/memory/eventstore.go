package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore keeps event records in memory.
type EventStore struct {
	mu      sync.RWMutex
	records map[string]domain.EventRecord
}

// NewEventStore creates an empty event store.
func NewEventStore() *EventStore {
	return &EventStore{records: make(map[string]domain.EventRecord)}
}

// Save stores or replaces a record.
func (s *EventStore) Save(_ context.Context, record domain.EventRecord) error {
	if record.Event.ID == "" {
		return fmt.Errorf("%w: event id is empty", domain.ErrInvalidInput)
	}
	record.Event.ExtractedEntities = record.Event.ExtractedEntities.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Event.ID] = record
	return nil
}

// Get retrieves a record by event ID.
func (s *EventStore) Get(_ context.Context, id string) (*domain.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return &rec, nil
}

// List returns records newest first.
func (s *EventStore) List(_ context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []domain.EventRecord
	for _, rec := range s.records {
		if filter.Matches(&rec) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.RecordedAt.Equal(b.RecordedAt) {
			return a.RecordedAt.After(b.RecordedAt)
		}
		return a.Event.ID > b.Event.ID
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}
