package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

func TestExtractEventID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid event URI",
			uri:      "docflow://events/01HX123",
			expected: "01HX123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://events/01HX123",
			expected: "",
		},
		{
			name:     "missing id",
			uri:      "docflow://events/",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "docflow://events/a/b",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractEventID(tt.uri))
		})
	}
}

func makeReadRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleEventsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists recent events", func(t *testing.T) {
		events := &mockEventService{records: []domain.EventRecord{{Event: *routedEvent()}}}
		server, err := newTestServer(events, nil)
		require.NoError(t, err)

		result, err := server.handleEventsResource(ctx, makeReadRequest("docflow://events"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "01HXROUTED")
		assert.Contains(t, result.Contents[0].Text, "invoice.txt")
		assert.Equal(t, recentEventsLimit, events.lastFilter.Limit)
	})

	t.Run("list error", func(t *testing.T) {
		server, err := newTestServer(&mockEventService{err: errors.New("boom")}, nil)
		require.NoError(t, err)

		_, err = server.handleEventsResource(ctx, makeReadRequest("docflow://events"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing events")
	})
}

func TestServer_handleEventResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns event", func(t *testing.T) {
		rec := &domain.EventRecord{Event: *routedEvent(), ArchivedPath: "/processed/invoice.txt"}
		server, err := newTestServer(&mockEventService{record: rec}, nil)
		require.NoError(t, err)

		result, err := server.handleEventResource(ctx, makeReadRequest("docflow://events/01HXROUTED"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"archived_path": "/processed/invoice.txt"`)
	})

	t.Run("bad URI", func(t *testing.T) {
		server, err := newTestServer(&mockEventService{}, nil)
		require.NoError(t, err)

		_, err = server.handleEventResource(ctx, makeReadRequest("docflow://events/"))
		assert.Error(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		server, err := newTestServer(&mockEventService{err: domain.ErrNotFound}, nil)
		require.NoError(t, err)

		_, err = server.handleEventResource(ctx, makeReadRequest("docflow://events/nope"))
		assert.Error(t, err)
	})

	t.Run("store error", func(t *testing.T) {
		server, err := newTestServer(&mockEventService{err: errors.New("disk")}, nil)
		require.NoError(t, err)

		_, err = server.handleEventResource(ctx, makeReadRequest("docflow://events/x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting event")
	})
}
