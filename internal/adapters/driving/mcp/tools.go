package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

// defaultListLimit caps list_events when no limit is given.
const defaultListLimit = 20

// ProcessFileInput is the input schema for the process_file tool.
type ProcessFileInput struct {
	Path string `json:"path" jsonschema:"path of the document to process"`
}

// ListEventsInput is the input schema for the list_events tool.
type ListEventsInput struct {
	Status string `json:"status,omitempty" jsonschema:"only return events with this status (e.g. ROUTED, EXTRACTION_FAILED)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of events to return (default 20)"`
}

// GetEventInput is the input schema for the get_event tool.
type GetEventInput struct {
	ID string `json:"id" jsonschema:"the event ID"`
}

// EventOutput is a flattened view of an event.
type EventOutput struct {
	ID             string         `json:"id"`
	Status         string         `json:"status"`
	Filename       string         `json:"filename"`
	OriginalPath   string         `json:"original_path"`
	DocumentType   string         `json:"document_type,omitempty"`
	Confidence     float64        `json:"confidence,omitempty"`
	Entities       map[string]any `json:"entities,omitempty"`
	ActionTaken    string         `json:"action_taken,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	ArchivedPath   string         `json:"archived_path,omitempty"`
	ArchiveError   string         `json:"archive_error,omitempty"`
	RunID          string         `json:"run_id,omitempty"`
	IngestionTime  time.Time      `json:"ingestion_time"`
	RecordedAt     *time.Time     `json:"recorded_at,omitempty"`
	ExtractedChars int            `json:"extracted_chars,omitempty"`
}

// ListEventsOutput is the output schema for the list_events tool.
type ListEventsOutput struct {
	Events []EventOutput `json:"events"`
	Count  int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_file",
		Description: "Run a document through extraction, classification and routing",
	}, s.handleProcessFile)

	if s.ports.Events == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_events",
		Description: "List processed document events, newest first",
	}, s.handleListEvents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_event",
		Description: "Get a processed document event by ID",
	}, s.handleGetEvent)
}

// handleProcessFile handles the process_file tool invocation.
func (s *Server) handleProcessFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessFileInput,
) (*mcp.CallToolResult, EventOutput, error) {
	if input.Path == "" {
		return nil, EventOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	raw, err := s.ports.Locate(input.Path)
	if err != nil {
		return nil, EventOutput{}, err
	}

	out := s.ports.Pipeline.Process(ctx, raw)
	return nil, outcomeOutput(out), nil
}

// handleListEvents handles the list_events tool invocation.
func (s *Server) handleListEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEventsInput,
) (*mcp.CallToolResult, ListEventsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := s.ports.Events.List(ctx, domain.EventFilter{
		Status: domain.Status(input.Status),
		Limit:  limit,
	})
	if err != nil {
		return nil, ListEventsOutput{}, err
	}

	output := ListEventsOutput{
		Events: make([]EventOutput, len(records)),
		Count:  len(records),
	}
	for i := range records {
		output.Events[i] = recordOutput(&records[i])
	}
	return nil, output, nil
}

// handleGetEvent handles the get_event tool invocation.
func (s *Server) handleGetEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEventInput,
) (*mcp.CallToolResult, EventOutput, error) {
	rec, err := s.ports.Events.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, EventOutput{}, fmt.Errorf("event %s not found", input.ID)
		}
		return nil, EventOutput{}, err
	}
	return nil, recordOutput(rec), nil
}

func outcomeOutput(out *driving.Outcome) EventOutput {
	o := eventOutput(out.Event)
	o.ArchivedPath = out.ArchivedPath
	if out.ArchiveErr != nil {
		o.ArchiveError = out.ArchiveErr.Error()
	}
	return o
}

func recordOutput(rec *domain.EventRecord) EventOutput {
	o := eventOutput(&rec.Event)
	o.ArchivedPath = rec.ArchivedPath
	o.ArchiveError = rec.ArchiveError
	o.RunID = rec.RunID
	if !rec.RecordedAt.IsZero() {
		at := rec.RecordedAt
		o.RecordedAt = &at
	}
	return o
}

func eventOutput(ev *domain.Event) EventOutput {
	o := EventOutput{
		ID:            ev.ID,
		Status:        ev.Status.String(),
		Filename:      ev.Filename,
		OriginalPath:  ev.SourceReference,
		Entities:      ev.ExtractedEntities,
		IngestionTime: ev.Metadata.IngestionTime,
	}
	if ev.ExtractedText != nil {
		o.ExtractedChars = len([]rune(*ev.ExtractedText))
	}
	if ev.Classification != nil {
		o.DocumentType = ev.Classification.DocumentType.String()
		o.Confidence = ev.Classification.Confidence
	}
	if ev.RoutingInfo != nil {
		o.ActionTaken = ev.RoutingInfo.ActionTaken
	}
	if ev.ErrorMessage != nil {
		o.ErrorMessage = *ev.ErrorMessage
	}
	return o
}
