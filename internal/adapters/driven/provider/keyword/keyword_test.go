package keyword

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		text string
		want domain.DocumentType
	}{
		{"This is an INVOICE", domain.DocumentInvoice},
		{"contract terms", domain.DocumentContract},
		{"My Resume", domain.DocumentResume},
		{"resume attached to the invoice", domain.DocumentInvoice},
		{"contract and resume", domain.DocumentContract},
		{"Lorem ipsum dolor sit amet", domain.DocumentUnknown},
		{"", domain.DocumentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.text))
		})
	}
}

var fixedDay = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *EntityExtractor {
	return NewEntityExtractor(0, WithSeed(42), WithClock(func() time.Time { return fixedDay }))
}

func TestEntityExtractor_Invoice(t *testing.T) {
	text := "This is an invoice for services rendered."

	for range 50 {
		res, err := newTestExtractor().Extract(context.Background(), text)
		require.NoError(t, err)

		e := res.Entities
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, len(text), e[domain.EntitySourceLengthKey])
		assert.Regexp(t, regexp.MustCompile(`^INV-\d{4}$`), e["InvoiceID"])
		assert.Equal(t, "2026-03-31", e["DueDate"])

		amount := e["Amount"].(string)
		require.True(t, strings.HasPrefix(amount, "$"))
		v, err := strconv.ParseFloat(amount[1:], 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 100.0)
		assert.LessOrEqual(t, v, 5000.0)
		assert.True(t, e.Recognised())
	}
}

func TestEntityExtractor_Contract(t *testing.T) {
	res, err := newTestExtractor().Extract(context.Background(), "Employment contract")
	require.NoError(t, err)

	e := res.Entities
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []string{"ABC Corp", "XYZ Inc."}, e["ContractingParties"])
	assert.Equal(t, "2026-03-01", e["EffectiveDate"])
	assert.Regexp(t, regexp.MustCompile(`^[1-5] Years$`), e["Term"])
}

func TestEntityExtractor_Resume(t *testing.T) {
	res, err := newTestExtractor().Extract(context.Background(), "resume of a candidate")
	require.NoError(t, err)

	e := res.Entities
	assert.Equal(t, "Jane Doe", e["CandidateName"])
	assert.Equal(t, []string{"Python", "GenAI", "System Design"}, e["KeySkills"])
	years := e["YearsOfExperience"].(int)
	assert.GreaterOrEqual(t, years, 2)
	assert.LessOrEqual(t, years, 10)
}

func TestEntityExtractor_Unrecognised(t *testing.T) {
	text := "Lorem ipsum dolor sit amet"
	res, err := newTestExtractor().Extract(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, domain.Entities{
		domain.EntitySourceLengthKey: len(text),
		domain.EntityErrorKey:        UnrecognisedMessage,
	}, res.Entities)
	assert.Zero(t, res.Count)
	assert.False(t, res.Entities.Recognised())
}

func TestEntityExtractor_SourceLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "ascii", text: "invoice 42", want: 10},
		{name: "accented", text: "Résumé für Müller", want: 17},
		{name: "cjk", text: "請求書 invoice", want: 11},
		{name: "empty", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestExtractor().Extract(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Entities[domain.EntitySourceLengthKey])
		})
	}
}

func TestEntityExtractor_LatencyHonoursContext(t *testing.T) {
	ext := NewEntityExtractor(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := ext.Extract(ctx, "invoice")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEntityExtractor_SeedIsReproducible(t *testing.T) {
	a, err := newTestExtractor().Extract(context.Background(), "invoice")
	require.NoError(t, err)
	b, err := newTestExtractor().Extract(context.Background(), "invoice")
	require.NoError(t, err)

	assert.Equal(t, a.Entities, b.Entities)
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		text string
		want domain.DocumentType
	}{
		{"invoice #1", domain.DocumentInvoice},
		{"the contract", domain.DocumentContract},
		{"my resume", domain.DocumentResume},
		{"Lorem ipsum dolor sit amet", domain.DocumentUnknown},
	}

	c := NewSeededClassifier(7)
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			for range 100 {
				got, err := c.Classify(context.Background(), tt.text)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.DocumentType)
				assert.True(t, tt.want.ConfidenceRange().Contains(got.Confidence), "confidence %v", got.Confidence)
				assert.Equal(t, domain.RoundConfidence(got.Confidence), got.Confidence)
				assert.NoError(t, got.Validate())
			}
		})
	}
}

func TestClassifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClassifier().Classify(ctx, "invoice")

	assert.ErrorIs(t, err, context.Canceled)
}
