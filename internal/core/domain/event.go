package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// IngestionMetadata is recorded once when an event is created.
type IngestionMetadata struct {
	// SizeBytes is the size of the source file.
	SizeBytes int64 `json:"size_bytes"`

	// IngestionTime is when the intake claimed the file.
	IngestionTime time.Time `json:"ingestion_time"`

	// MIMEType is the detected content type of the source.
	MIMEType string `json:"mime_type,omitempty"`
}

// RoutingInfo records the routing decision for a document.
type RoutingInfo struct {
	// ActionTaken describes the downstream action.
	ActionTaken string `json:"action_taken"`

	// RoutedAt is when the decision was made.
	RoutedAt time.Time `json:"routed_at"`
}

// Event is the envelope that tracks one document through the pipeline.
// Stage outputs are populated if and only if the event has reached the
// status that produces them; use the Mark methods to advance it.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// Status is the furthest pipeline state reached.
	Status Status `json:"status"`

	// Filename is the original base name of the document.
	Filename string `json:"filename"`

	// SourceReference locates the document in the intake.
	SourceReference string `json:"original_path"`

	// Metadata is set at creation and never changes.
	Metadata IngestionMetadata `json:"metadata"`

	// ExtractedText is present once the event is EXTRACTED.
	ExtractedText *string `json:"extracted_text,omitempty"`

	// ExtractedEntities is present once the event is EXTRACTED.
	ExtractedEntities Entities `json:"extracted_entities,omitempty"`

	// Classification is present once the event is CLASSIFIED.
	Classification *Classification `json:"classification,omitempty"`

	// RoutingInfo is present once the event is ROUTED.
	RoutingInfo *RoutingInfo `json:"routing_info,omitempty"`

	// ErrorMessage is present only on EXTRACTION_FAILED.
	ErrorMessage *string `json:"error_message,omitempty"`
}

// NewEvent creates an INGESTED event for a claimed document.
func NewEvent(id string, raw RawDocument, ingestedAt time.Time) *Event {
	return &Event{
		ID:              id,
		Status:          StatusIngested,
		Filename:        raw.Filename,
		SourceReference: raw.URI,
		Metadata: IngestionMetadata{
			SizeBytes:     raw.Size,
			IngestionTime: ingestedAt,
			MIMEType:      raw.MIMEType,
		},
	}
}

// RawDocument reconstructs the source reference held by the event.
func (e *Event) RawDocument() RawDocument {
	return RawDocument{
		Filename: e.Filename,
		URI:      e.SourceReference,
		MIMEType: e.Metadata.MIMEType,
		Size:     e.Metadata.SizeBytes,
	}
}

// MarkExtracted records extraction output and advances to EXTRACTED.
func (e *Event) MarkExtracted(text string, entities Entities) error {
	if err := e.transition(StatusExtracted); err != nil {
		return err
	}
	if entities == nil {
		entities = Entities{}
	}
	e.ExtractedText = &text
	e.ExtractedEntities = entities
	e.Status = StatusExtracted
	return nil
}

// MarkExtractionFailed records the failure reason and moves to the
// absorbing EXTRACTION_FAILED state.
func (e *Event) MarkExtractionFailed(message string) error {
	if err := e.transition(StatusExtractionFailed); err != nil {
		return err
	}
	e.ErrorMessage = &message
	e.Status = StatusExtractionFailed
	return nil
}

// MarkClassified records the classification and advances to CLASSIFIED.
func (e *Event) MarkClassified(c Classification) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("classification %q/%v: %w", c.DocumentType, c.Confidence, err)
	}
	if err := e.transition(StatusClassified); err != nil {
		return err
	}
	e.Classification = &c
	e.Status = StatusClassified
	return nil
}

// MarkRouted records the routing decision and advances to ROUTED.
func (e *Event) MarkRouted(action string, at time.Time) error {
	if err := e.transition(StatusRouted); err != nil {
		return err
	}
	e.RoutingInfo = &RoutingInfo{ActionTaken: action, RoutedAt: at}
	e.Status = StatusRouted
	return nil
}

func (e *Event) transition(to Status) error {
	if !CanTransition(e.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, to)
	}
	return nil
}

// MarshalJSON writes the envelope. Once the event is EXTRACTED the
// entity map is always emitted, even when empty.
func (e Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID                string            `json:"id"`
		Status            Status            `json:"status"`
		Filename          string            `json:"filename"`
		SourceReference   string            `json:"original_path"`
		Metadata          IngestionMetadata `json:"metadata"`
		ExtractedText     *string           `json:"extracted_text,omitempty"`
		ExtractedEntities *Entities         `json:"extracted_entities,omitempty"`
		Classification    *Classification   `json:"classification,omitempty"`
		RoutingInfo       *RoutingInfo      `json:"routing_info,omitempty"`
		ErrorMessage      *string           `json:"error_message,omitempty"`
	}
	w := wire{
		ID:              e.ID,
		Status:          e.Status,
		Filename:        e.Filename,
		SourceReference: e.SourceReference,
		Metadata:        e.Metadata,
		ExtractedText:   e.ExtractedText,
		Classification:  e.Classification,
		RoutingInfo:     e.RoutingInfo,
		ErrorMessage:    e.ErrorMessage,
	}
	if e.ExtractedEntities != nil || e.Status.Reached(StatusExtracted) {
		ents := e.ExtractedEntities
		if ents == nil {
			ents = Entities{}
		}
		w.ExtractedEntities = &ents
	}
	return json.Marshal(w)
}

// Succeeded reports whether the event completed the success path.
func (e *Event) Succeeded() bool {
	return e.Status == StatusRouted
}

// Validate checks that populated fields match the status.
func (e *Event) Validate() error {
	if !e.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, e.Status)
	}
	checks := []struct {
		name    string
		present bool
		want    bool
	}{
		{"extracted_text", e.ExtractedText != nil, e.Status.Reached(StatusExtracted)},
		{"extracted_entities", e.ExtractedEntities != nil, e.Status.Reached(StatusExtracted)},
		{"classification", e.Classification != nil, e.Status.Reached(StatusClassified)},
		{"routing_info", e.RoutingInfo != nil, e.Status.Reached(StatusRouted)},
		{"error_message", e.ErrorMessage != nil, e.Status.IsFailure()},
	}
	for _, c := range checks {
		if c.present != c.want {
			return fmt.Errorf("%w: %s present=%t at status %s", ErrInvalidInput, c.name, c.present, e.Status)
		}
	}
	return nil
}
