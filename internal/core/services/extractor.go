package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Extractor implements Stage.
var _ Stage = (*Extractor)(nil)

// Extractor resolves a document to text and extracts its entities.
// Text files are read verbatim. Everything else goes through the
// text recogniser.
type Extractor struct {
	reader     driven.DocumentReader
	recogniser driven.TextRecogniser
	entities   driven.EntityExtractor
	policy     CallPolicy
	latency    time.Duration
	reporter   driven.StepReporter
}

// NewExtractor creates the extraction stage.
// The recogniser may be nil, in which case non-text documents fail.
func NewExtractor(
	reader driven.DocumentReader,
	recogniser driven.TextRecogniser,
	entities driven.EntityExtractor,
	policy CallPolicy,
	latency time.Duration,
	reporter driven.StepReporter,
) *Extractor {
	return &Extractor{
		reader:     reader,
		recogniser: recogniser,
		entities:   entities,
		policy:     policy,
		latency:    latency,
		reporter:   reporterOrNop(reporter),
	}
}

// Name returns the agent name.
func (x *Extractor) Name() string {
	return AgentExtractor
}

// Run moves an INGESTED event to EXTRACTED, or to EXTRACTION_FAILED if
// the source cannot be turned into text.
func (x *Extractor) Run(ctx context.Context, ev *domain.Event) domain.StageResult {
	x.reporter.Step(AgentExtractor, fmt.Sprintf("Received event for '%s'.", ev.Filename))

	text, err := x.resolve(ctx, ev.RawDocument())
	if err != nil {
		return x.fail(ev, err)
	}

	if err := pause(ctx, x.latency); err != nil {
		return x.fail(ev, err)
	}

	x.reporter.Step(AgentEntityService, "Analyzing text for entities...")
	var result domain.EntityResult
	err = x.policy.Do(ctx, "entity extraction", func(ctx context.Context) error {
		r, err := x.entities.Extract(ctx, text)
		result = r
		return err
	})
	if err != nil {
		return x.fail(ev, err)
	}
	x.reporter.Step(AgentEntityService, fmt.Sprintf("Extraction complete. Found %d entities.", result.Count))

	if err := ev.MarkExtracted(text, result.Entities); err != nil {
		return domain.Halt(ev, err)
	}
	x.reporter.Step(AgentExtractor, "Event 'EXTRACTED' created.")
	return domain.Continue(ev)
}

// resolve turns the source into text.
func (x *Extractor) resolve(ctx context.Context, raw domain.RawDocument) (string, error) {
	if raw.IsText() {
		data, err := x.reader.Read(ctx, raw)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrInvalidInput, raw.Filename)
		}
		x.reporter.Step(AgentExtractor, "Text content successfully read from file.")
		return string(data), nil
	}

	if x.recogniser == nil {
		return "", fmt.Errorf("%w: no text recogniser for %s", domain.ErrProviderUnavailable, raw.MIMEType)
	}
	x.reporter.Step(AgentExtractor, fmt.Sprintf("Simulating OCR for non-text file '%s'.", raw.Filename))

	var text string
	err := x.policy.Do(ctx, "text recognition", func(ctx context.Context) error {
		t, err := x.recogniser.Recognise(ctx, raw)
		text = t
		return err
	})
	return text, err
}

// fail records the failure on the event and halts the pipeline.
func (x *Extractor) fail(ev *domain.Event, cause error) domain.StageResult {
	xerr := &domain.ExtractionError{Filename: ev.Filename, Err: cause}
	if err := ev.MarkExtractionFailed(cause.Error()); err != nil {
		return domain.Halt(ev, err)
	}
	logger.Debug("extraction failed for %s: %v", ev.Filename, cause)
	x.reporter.Fail(AgentExtractor, fmt.Sprintf("An error occurred: %v", cause))
	return domain.Halt(ev, xerr)
}
