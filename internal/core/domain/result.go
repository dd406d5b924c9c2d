package domain

import "fmt"

// StageResult is the tagged outcome of one pipeline stage.
// A result with a non-nil Err halts the pipeline; the event still
// carries the terminal status the stage recorded.
type StageResult struct {
	// Event is the envelope after the stage ran.
	Event *Event

	// Err is the reason the pipeline must stop, if any.
	Err error
}

// Continue returns a result that lets the pipeline proceed.
func Continue(ev *Event) StageResult {
	return StageResult{Event: ev}
}

// Halt returns a result that stops the pipeline.
func Halt(ev *Event, err error) StageResult {
	return StageResult{Event: ev, Err: err}
}

// Halted returns true if the pipeline must stop.
func (r StageResult) Halted() bool {
	return r.Err != nil
}

// ExtractionError describes why a source could not be resolved to text.
// It matches ErrExtractionFailed with errors.Is.
type ExtractionError struct {
	// Filename is the document that failed.
	Filename string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.Err}
}
