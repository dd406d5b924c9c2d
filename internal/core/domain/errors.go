package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition indicates a stage tried to move an event
	// to a status that is not reachable from its current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrExtractionFailed indicates the source could not be resolved to text.
	// Events carrying this error end in StatusExtractionFailed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrArchiveFailed indicates a routed file could not be moved to the
	// processed location. The event itself is still considered processed.
	ErrArchiveFailed = errors.New("archive failed")

	// ErrArchiveCollision indicates the processed location already holds a
	// file with the same name.
	ErrArchiveCollision = errors.New("archive target already exists")

	// ErrUnsupportedType indicates a document type the recogniser cannot read.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProviderUnavailable indicates a capability provider is not configured.
	ErrProviderUnavailable = errors.New("capability provider unavailable")

	// ErrNoIntake indicates the pipeline was started without an intake.
	ErrNoIntake = errors.New("intake not configured")

	// ErrStoreUnavailable indicates the event audit store is not configured.
	ErrStoreUnavailable = errors.New("event store unavailable")
)
