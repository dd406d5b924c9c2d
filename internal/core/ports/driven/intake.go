package driven

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// Intake is the watched location documents are dropped into.
type Intake interface {
	// Claim returns the next unprocessed document, or nil if there is none.
	// Claim never returns more than one document per call.
	Claim(ctx context.Context) (*domain.RawDocument, error)

	// Archive moves a routed document to the processed location, keyed by
	// its original filename. Returns the new path.
	Archive(ctx context.Context, raw domain.RawDocument) (string, error)
}

// DocumentReader reads the content of a claimed document.
type DocumentReader interface {
	// Read returns the raw bytes of the document.
	Read(ctx context.Context, raw domain.RawDocument) ([]byte, error)
}

// IntakeWatcher pushes a signal whenever the intake may have new files.
// Signals are hints; the poll loop still claims through Intake.
type IntakeWatcher interface {
	// Watch starts watching and returns a channel of wake-up signals.
	// The channel is closed when ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}
