package domain

import "time"

// EventRecord is the audit entry written once an event leaves the pipeline.
type EventRecord struct {
	// Event is the final state of the envelope.
	Event Event

	// RunID correlates records written by the same process.
	RunID string

	// ArchivedPath is where the file was moved, if it was.
	ArchivedPath string

	// ArchiveError describes a failed move, if any.
	ArchiveError string

	// RecordedAt is when the record was written.
	RecordedAt time.Time
}

// EventFilter narrows an audit listing.
type EventFilter struct {
	// Status keeps only records with this status. Empty means all.
	Status Status

	// Limit caps the number of records. Zero means no limit.
	Limit int
}

// Matches reports whether the record passes the filter's status check.
func (f EventFilter) Matches(r *EventRecord) bool {
	return f.Status == "" || r.Event.Status == f.Status
}
