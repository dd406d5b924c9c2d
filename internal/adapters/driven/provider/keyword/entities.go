package keyword

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Ensure EntityExtractor implements the interface.
var _ driven.EntityExtractor = (*EntityExtractor)(nil)

// UnrecognisedMessage is stored under the error key when no keyword matches.
const UnrecognisedMessage = "Could not determine document structure for entity extraction."

const dateLayout = "2006-01-02"

// EntityExtractor fabricates entities for the matched document type.
type EntityExtractor struct {
	latency time.Duration
	rand    *source
	now     func() time.Time
}

// Option configures an EntityExtractor.
type Option func(*EntityExtractor)

// WithSeed makes generated values reproducible.
func WithSeed(seed uint64) Option {
	return func(e *EntityExtractor) {
		e.rand = newSource(seed)
	}
}

// WithClock overrides the clock used for dates.
func WithClock(now func() time.Time) Option {
	return func(e *EntityExtractor) {
		e.now = now
	}
}

// NewEntityExtractor creates an extractor that takes latency per call.
func NewEntityExtractor(latency time.Duration, opts ...Option) *EntityExtractor {
	e := &EntityExtractor{
		latency: latency,
		rand:    randomSource(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns entities for the first keyword found in text.
// Every result carries the analysed text length in characters.
func (e *EntityExtractor) Extract(ctx context.Context, text string) (domain.EntityResult, error) {
	if e.latency > 0 {
		t := time.NewTimer(e.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return domain.EntityResult{}, ctx.Err()
		}
	}

	entities := domain.Entities{domain.EntitySourceLengthKey: utf8.RuneCountInString(text)}
	today := e.now()

	switch Match(text) {
	case domain.DocumentInvoice:
		entities["InvoiceID"] = fmt.Sprintf("INV-%d", e.rand.intRange(1000, 9999))
		entities["Amount"] = fmt.Sprintf("$%.2f", e.rand.floatRange(100, 5000))
		entities["DueDate"] = today.AddDate(0, 0, 30).Format(dateLayout)
	case domain.DocumentContract:
		entities["ContractingParties"] = []string{"ABC Corp", "XYZ Inc."}
		entities["EffectiveDate"] = today.Format(dateLayout)
		entities["Term"] = fmt.Sprintf("%d Years", e.rand.intRange(1, 5))
	case domain.DocumentResume:
		entities["CandidateName"] = "Jane Doe"
		entities["YearsOfExperience"] = e.rand.intRange(2, 10)
		entities["KeySkills"] = []string{"Python", "GenAI", "System Design"}
	default:
		entities[domain.EntityErrorKey] = UnrecognisedMessage
	}

	return domain.NewEntityResult(entities), nil
}
