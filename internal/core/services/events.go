package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

// Ensure EventService implements the interface.
var _ driving.EventService = (*EventService)(nil)

// EventService reads the event audit log.
type EventService struct {
	store driven.EventStore
}

// NewEventService creates an event service. The store may be nil.
func NewEventService(store driven.EventStore) *EventService {
	return &EventService{store: store}
}

// Get returns the record for an event ID.
func (s *EventService) Get(ctx context.Context, id string) (*domain.EventRecord, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty event id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns records matching the filter, newest first.
func (s *EventService) List(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}
	return s.store.List(ctx, filter)
}
