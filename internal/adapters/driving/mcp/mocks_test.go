package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// mockPipeline is a mock implementation of driving.Pipeline.
type mockPipeline struct {
	outcome   *driving.Outcome
	processed []domain.RawDocument
}

func (m *mockPipeline) RunOnce(_ context.Context) (*driving.Outcome, error) {
	return m.outcome, nil
}

func (m *mockPipeline) Process(_ context.Context, raw domain.RawDocument) *driving.Outcome {
	m.processed = append(m.processed, raw)
	return m.outcome
}

func (m *mockPipeline) ProcessBatch(_ context.Context, raws []domain.RawDocument) ([]*driving.Outcome, error) {
	out := make([]*driving.Outcome, len(raws))
	for i := range raws {
		out[i] = m.outcome
	}
	return out, nil
}

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	records    []domain.EventRecord
	record     *domain.EventRecord
	err        error
	lastFilter domain.EventFilter
}

func (m *mockEventService) Get(_ context.Context, _ string) (*domain.EventRecord, error) {
	return m.record, m.err
}

func (m *mockEventService) List(_ context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	m.lastFilter = filter
	return m.records, m.err
}

func stubLocator(path string) (domain.RawDocument, error) {
	return domain.RawDocument{Filename: "invoice.txt", URI: path, MIMEType: "text/plain", Size: 12}, nil
}

func routedEvent() *domain.Event {
	text := "Invoice #123"
	return &domain.Event{
		ID:              "01HXROUTED",
		Status:          domain.StatusRouted,
		Filename:        "invoice.txt",
		SourceReference: "/intake/invoice.txt",
		Metadata:        domain.IngestionMetadata{SizeBytes: 12, IngestionTime: testTime},
		ExtractedText:   &text,
		ExtractedEntities: domain.Entities{
			"InvoiceID":          "INV-1234",
			"source_text_length": 12,
		},
		Classification: &domain.Classification{DocumentType: domain.DocumentInvoice, Confidence: 0.95},
		RoutingInfo:    &domain.RoutingInfo{ActionTaken: "Calling ERP API with invoice data: {}", RoutedAt: testTime},
	}
}

func failedEvent() *domain.Event {
	msg := "read blob.bin: permission denied"
	return &domain.Event{
		ID:              "01HXFAILED",
		Status:          domain.StatusExtractionFailed,
		Filename:        "blob.bin",
		SourceReference: "/intake/blob.bin",
		Metadata:        domain.IngestionMetadata{SizeBytes: 3, IngestionTime: testTime},
		ErrorMessage:    &msg,
	}
}

func newTestServer(events driving.EventService, pipeline *mockPipeline) (*Server, error) {
	if pipeline == nil {
		pipeline = &mockPipeline{}
	}
	return NewServer(&Ports{Pipeline: pipeline, Locate: stubLocator, Events: events})
}
