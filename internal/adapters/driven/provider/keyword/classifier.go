package keyword

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.DocumentClassifier = (*Classifier)(nil)

// Classifier labels text by keyword and draws a confidence from the
// type's plausible band.
type Classifier struct {
	rand *source
}

// NewClassifier creates a keyword classifier.
func NewClassifier() *Classifier {
	return &Classifier{rand: randomSource()}
}

// NewSeededClassifier creates a classifier with reproducible confidences.
func NewSeededClassifier(seed uint64) *Classifier {
	return &Classifier{rand: newSource(seed)}
}

// Classify returns the matched type with a confidence rounded to two
// decimals.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if err := ctx.Err(); err != nil {
		return domain.Classification{}, err
	}

	docType := Match(text)
	band := docType.ConfidenceRange()
	confidence := domain.RoundConfidence(c.rand.floatRange(band.Min, band.Max))

	return domain.Classification{DocumentType: docType, Confidence: confidence}, nil
}
