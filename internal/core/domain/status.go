package domain

// Status is the pipeline state an Event has reached.
type Status string

// Pipeline statuses.
const (
	// StatusIngested is set when the intake claims a file.
	StatusIngested Status = "INGESTED"

	// StatusExtracted is set once text and entities are available.
	StatusExtracted Status = "EXTRACTED"

	// StatusExtractionFailed is the absorbing failure state.
	// It is reachable only from StatusIngested.
	StatusExtractionFailed Status = "EXTRACTION_FAILED"

	// StatusClassified is set once a document type is assigned.
	StatusClassified Status = "CLASSIFIED"

	// StatusRouted is set once a routing action is recorded.
	StatusRouted Status = "ROUTED"
)

// rank orders the success path. The failure state has no rank.
func (s Status) rank() int {
	switch s {
	case StatusIngested:
		return 1
	case StatusExtracted:
		return 2
	case StatusClassified:
		return 3
	case StatusRouted:
		return 4
	default:
		return 0
	}
}

// IsValid returns true if the status is recognised.
func (s Status) IsValid() bool {
	return s == StatusExtractionFailed || s.rank() > 0
}

// IsFailure returns true for the failure state.
func (s Status) IsFailure() bool {
	return s == StatusExtractionFailed
}

// IsTerminal returns true when no further stage may run.
func (s Status) IsTerminal() bool {
	return s == StatusExtractionFailed || s == StatusRouted
}

// Reached reports whether s is at or past target on the success path.
// A failed status has reached nothing but itself.
func (s Status) Reached(target Status) bool {
	if s.IsFailure() || target.IsFailure() {
		return s == target
	}
	return s.rank() > 0 && s.rank() >= target.rank()
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether an event may move from one status to another.
// Transitions advance one step at a time along
// INGESTED -> EXTRACTED -> CLASSIFIED -> ROUTED, or INGESTED -> EXTRACTION_FAILED.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusIngested:
		return to == StatusExtracted || to == StatusExtractionFailed
	case StatusExtracted:
		return to == StatusClassified
	case StatusClassified:
		return to == StatusRouted
	default:
		return false
	}
}
