package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// --- Mock implementations for pipeline testing ---

// mockIntake implements driven.Intake and driven.DocumentReader over an
// in-memory set of files.
type mockIntake struct {
	mu         sync.Mutex
	files      map[string][]byte
	claimed    map[string]bool
	archived   []string
	claimErr   error
	archiveErr error
	readErr    map[string]error
}

func newMockIntake(files map[string]string) *mockIntake {
	m := &mockIntake{
		files:   make(map[string][]byte),
		claimed: make(map[string]bool),
		readErr: make(map[string]error),
	}
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

func (m *mockIntake) Claim(_ context.Context) (*domain.RawDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		if !m.claimed[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)
	name := names[0]
	m.claimed[name] = true
	return rawFor(name, m.files[name]), nil
}

func (m *mockIntake) Archive(_ context.Context, raw domain.RawDocument) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.archiveErr != nil {
		return "", m.archiveErr
	}
	delete(m.files, raw.Filename)
	m.archived = append(m.archived, raw.Filename)
	return "/processed/" + raw.Filename, nil
}

func (m *mockIntake) Read(_ context.Context, raw domain.RawDocument) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[raw.Filename]; err != nil {
		return nil, err
	}
	data, ok := m.files[raw.Filename]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func (m *mockIntake) archivedFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.archived...)
}

func (m *mockIntake) remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func rawFor(name string, content []byte) *domain.RawDocument {
	mime := "text/plain"
	if !strings.HasSuffix(name, ".txt") {
		mime = "application/pdf"
	}
	return &domain.RawDocument{
		Filename: name,
		URI:      "/intake/" + name,
		MIMEType: mime,
		Size:     int64(len(content)),
	}
}

// mockEntityExtractor implements driven.EntityExtractor.
type mockEntityExtractor struct {
	mu     sync.Mutex
	calls  int
	failN  int
	err    error
	result func(text string) domain.EntityResult
}

func (m *mockEntityExtractor) Extract(_ context.Context, text string) (domain.EntityResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil && (m.failN == 0 || m.calls <= m.failN) {
		return domain.EntityResult{}, m.err
	}
	if m.result != nil {
		return m.result(text), nil
	}
	return domain.NewEntityResult(keywordEntities(text)), nil
}

func (m *mockEntityExtractor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func keywordEntities(text string) domain.Entities {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "invoice"):
		return domain.Entities{"InvoiceID": "INV-1234", "Amount": "$100.00", "source_text_length": utf8.RuneCountInString(text)}
	case strings.Contains(lower, "contract"):
		return domain.Entities{"Term": "2 Years", "source_text_length": utf8.RuneCountInString(text)}
	default:
		return domain.Entities{
			"error":              "Could not determine document structure for entity extraction.",
			"source_text_length": utf8.RuneCountInString(text),
		}
	}
}

// mockClassifier implements driven.DocumentClassifier.
type mockClassifier struct {
	mu     sync.Mutex
	calls  int
	err    error
	result *domain.Classification
}

func (m *mockClassifier) Classify(_ context.Context, text string) (domain.Classification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.Classification{}, m.err
	}
	if m.result != nil {
		return *m.result, nil
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "invoice"):
		return domain.Classification{DocumentType: domain.DocumentInvoice, Confidence: 0.95}, nil
	case strings.Contains(lower, "contract"):
		return domain.Classification{DocumentType: domain.DocumentContract, Confidence: 0.9}, nil
	default:
		return domain.Classification{DocumentType: domain.DocumentUnknown, Confidence: 0.5}, nil
	}
}

func (m *mockClassifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRecogniser implements driven.TextRecogniser.
type mockRecogniser struct {
	text string
	err  error
}

func (m *mockRecogniser) Recognise(_ context.Context, _ domain.RawDocument) (string, error) {
	return m.text, m.err
}

// mockEventStore implements driven.EventStore.
type mockEventStore struct {
	mu      sync.Mutex
	records []domain.EventRecord
	saveErr error
}

func (m *mockEventStore) Save(_ context.Context, record domain.EventRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockEventStore) Get(_ context.Context, id string) (*domain.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].Event.ID == id {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventStore) List(_ context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.EventRecord
	for i := range m.records {
		if filter.Matches(&m.records[i]) {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

// recordingReporter implements driven.StepReporter.
type recordingReporter struct {
	mu     sync.Mutex
	steps  []string
	fails  []string
	events []string
}

func (r *recordingReporter) Step(agent, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, agent+": "+message)
}

func (r *recordingReporter) Fail(agent, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fails = append(r.fails, agent+": "+message)
}

func (r *recordingReporter) Event(title string, ev *domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, title+": "+string(ev.Status))
}

func (r *recordingReporter) hasStep(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.steps {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func (r *recordingReporter) hasFail(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.fails {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
