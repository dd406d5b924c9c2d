package driven

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// EntityExtractor is the entity extraction capability provider.
// Implementations may be an LLM, a rules engine, or a stub.
type EntityExtractor interface {
	// Extract analyses text and returns the extracted fields.
	// An unrecognised document is not an error: the result carries
	// an error marker instead of fields.
	Extract(ctx context.Context, text string) (domain.EntityResult, error)
}

// DocumentClassifier is the classification capability provider.
type DocumentClassifier interface {
	// Classify returns a document type and confidence for the text.
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// TextRecogniser converts non-text documents into text (OCR).
// Output is UTF-8 text of arbitrary length.
type TextRecogniser interface {
	// Recognise returns the text content of the document.
	Recognise(ctx context.Context, raw domain.RawDocument) (string, error)
}
