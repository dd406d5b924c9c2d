package driving

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// EventService queries the audit log of processed events.
type EventService interface {
	// Get retrieves a record by event ID.
	Get(ctx context.Context, id string) (*domain.EventRecord, error)

	// List returns records newest first.
	List(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error)
}
