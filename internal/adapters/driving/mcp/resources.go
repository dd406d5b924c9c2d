package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docflow resources.
	uriScheme = "docflow://"

	// recentEventsLimit caps the events resource.
	recentEventsLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Events == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "events",
		Name:        "events",
		Description: "Most recent processed document events",
		MIMEType:    "application/json",
	}, s.handleEventsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "events/{eventId}",
		Name:        "event",
		Description: "Final state of a processed document event",
		MIMEType:    "application/json",
	}, s.handleEventResource)
}

// handleEventsResource returns the most recent events.
func (s *Server) handleEventsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Events.List(ctx, domain.EventFilter{Limit: recentEventsLimit})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	out := make([]EventOutput, len(records))
	for i := range records {
		out[i] = recordOutput(&records[i])
	}
	return jsonResource(req.Params.URI, out)
}

// handleEventResource returns a single event record.
func (s *Server) handleEventResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractEventID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return jsonResource(req.Params.URI, recordOutput(rec))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractEventID extracts the event ID from docflow://events/{eventId}.
func extractEventID(uri string) string {
	const prefix = uriScheme + "events/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
