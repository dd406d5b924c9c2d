package driven

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// EventStore persists the final record of every processed event.
type EventStore interface {
	// Save stores or replaces a record, keyed by event ID.
	Save(ctx context.Context, record domain.EventRecord) error

	// Get retrieves a record by event ID.
	Get(ctx context.Context, id string) (*domain.EventRecord, error)

	// List returns records newest first.
	List(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error)
}
