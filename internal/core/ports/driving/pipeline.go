package driving

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// Pipeline drives documents through extraction, classification and routing.
type Pipeline interface {
	// RunOnce claims at most one document from the intake and processes it.
	// Returns nil when the intake is empty.
	RunOnce(ctx context.Context) (*Outcome, error)

	// Process runs a single already-claimed document through the pipeline.
	Process(ctx context.Context, raw domain.RawDocument) *Outcome

	// ProcessBatch runs several documents with bounded concurrency.
	// Outcomes are returned in input order.
	ProcessBatch(ctx context.Context, raws []domain.RawDocument) ([]*Outcome, error)
}

// Outcome is the result of processing one document.
type Outcome struct {
	// Event is the final state of the envelope.
	Event *domain.Event

	// ArchivedPath is where the file was moved. Empty if not archived.
	ArchivedPath string

	// ArchiveErr is set when a routed file could not be moved.
	ArchiveErr error
}

// Archived reports whether the document reached the processed location.
func (o *Outcome) Archived() bool {
	return o.ArchivedPath != ""
}

// Poller runs the pipeline in a polling loop.
type Poller interface {
	// Start runs poll cycles until ctx is cancelled or Stop is called.
	// A document already in flight always finishes first.
	Start(ctx context.Context) error

	// Stop ends the loop after the current cycle.
	Stop() error

	// Stats returns counters for the current run.
	Stats() PollStats
}

// PollStats counts poll loop activity.
type PollStats struct {
	// RunID identifies this run in the audit log.
	RunID string

	// Cycles is the number of poll cycles completed.
	Cycles int

	// Processed is the number of documents that reached a terminal state.
	Processed int

	// Failed is the number of documents that ended in EXTRACTION_FAILED.
	Failed int

	// ArchiveErrors is the number of routed documents that could not be moved.
	ArchiveErrors int
}
