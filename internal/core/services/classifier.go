package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Classifier implements Stage.
var _ Stage = (*Classifier)(nil)

// Classifier assigns a document type and confidence to extracted text.
// A provider failure degrades to Unknown at the bottom of its confidence
// band instead of halting the pipeline.
type Classifier struct {
	provider driven.DocumentClassifier
	policy   CallPolicy
	latency  time.Duration
	reporter driven.StepReporter
}

// NewClassifier creates the classification stage.
func NewClassifier(
	provider driven.DocumentClassifier,
	policy CallPolicy,
	latency time.Duration,
	reporter driven.StepReporter,
) *Classifier {
	return &Classifier{
		provider: provider,
		policy:   policy,
		latency:  latency,
		reporter: reporterOrNop(reporter),
	}
}

// Name returns the agent name.
func (c *Classifier) Name() string {
	return AgentClassifier
}

// Run moves an EXTRACTED event to CLASSIFIED.
func (c *Classifier) Run(ctx context.Context, ev *domain.Event) domain.StageResult {
	c.reporter.Step(AgentClassifier, fmt.Sprintf("Received event for '%s'.", ev.Filename))

	var text string
	if ev.ExtractedText != nil {
		text = *ev.ExtractedText
	}

	result := c.classify(ctx, text)

	// Latency is cosmetic here; an interrupted wait still classifies.
	_ = pause(ctx, c.latency)

	if err := ev.MarkClassified(result); err != nil {
		return domain.Halt(ev, err)
	}
	c.reporter.Step(AgentClassifier, fmt.Sprintf("Document classified as '%s' with confidence %.2f.",
		result.DocumentType, result.Confidence))
	c.reporter.Step(AgentClassifier, "Event 'CLASSIFIED' created.")
	return domain.Continue(ev)
}

func (c *Classifier) classify(ctx context.Context, text string) domain.Classification {
	fallback := domain.Classification{
		DocumentType: domain.DocumentUnknown,
		Confidence:   domain.DocumentUnknown.ConfidenceRange().Min,
	}
	if c.provider == nil {
		c.reporter.Fail(AgentClassifier, "No classification provider configured; defaulting to Unknown.")
		return fallback
	}

	var result domain.Classification
	err := c.policy.Do(ctx, "classification", func(ctx context.Context) error {
		r, err := c.provider.Classify(ctx, text)
		result = r
		return err
	})
	if err == nil {
		err = result.Validate()
	}
	if err != nil {
		logger.Warn("classification degraded to Unknown: %v", err)
		c.reporter.Fail(AgentClassifier, fmt.Sprintf("Classification failed (%v); defaulting to Unknown.", err))
		return fallback
	}
	result.Confidence = domain.RoundConfidence(result.Confidence)
	return result
}
