package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Pipeline orchestrates a document through the stages and archives it
// once it is routed.
type Pipeline struct {
	intake   driven.Intake
	stages   []Stage
	store    driven.EventStore
	reporter driven.StepReporter
	workers  int
	runID    string

	newID IDGenerator
	now   func() time.Time
}

// NewPipeline creates a pipeline.
// The store may be nil, in which case events are not recorded.
func NewPipeline(
	intake driven.Intake,
	stages []Stage,
	store driven.EventStore,
	reporter driven.StepReporter,
	workers int,
	runID string,
) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		intake:   intake,
		stages:   stages,
		store:    store,
		reporter: reporterOrNop(reporter),
		workers:  workers,
		runID:    runID,
		newID:    NewEventIDGenerator(),
		now:      time.Now,
	}
}

// NewStages builds the standard extractor, classifier and router chain.
func NewStages(
	reader driven.DocumentReader,
	recogniser driven.TextRecogniser,
	entities driven.EntityExtractor,
	classifier driven.DocumentClassifier,
	settings domain.PipelineSettings,
	reporter driven.StepReporter,
) []Stage {
	policy := PolicyFromSettings(settings.Provider)
	latency := settings.Latency()
	return []Stage{
		NewExtractor(reader, recogniser, entities, policy, latency.Extraction, reporter),
		NewClassifier(classifier, policy, latency.Classification, reporter),
		NewRouter(latency.Routing, reporter),
	}
}

// RunID returns the identifier recorded with every event.
func (p *Pipeline) RunID() string {
	return p.runID
}

// RunOnce claims at most one document and processes it to a terminal
// state. Cancelling ctx stops the claim but never a document in flight.
func (p *Pipeline) RunOnce(ctx context.Context) (*driving.Outcome, error) {
	if p.intake == nil {
		return nil, domain.ErrNoIntake
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := p.intake.Claim(ctx)
	if err != nil {
		return nil, fmt.Errorf("claim document: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	p.reporter.Step(AgentIngestor, fmt.Sprintf("New file detected: '%s'", raw.Filename))
	return p.Process(ctx, *raw), nil
}

// Process runs one document through every stage, records the event and
// archives the file if it was routed. Cancelling ctx does not interrupt
// the document; values carried by ctx are kept.
func (p *Pipeline) Process(ctx context.Context, raw domain.RawDocument) *driving.Outcome {
	ctx = context.WithoutCancel(ctx)

	// 1. Create the INGESTED envelope
	ev := domain.NewEvent(p.newID(), raw, p.now())
	logger.Section(raw.Filename)
	logger.Debug("event %s for %s (%s)", ev.ID, raw.URI, raw.MIMEType)
	p.reporter.Step(AgentIngestor, fmt.Sprintf("File size: %d bytes. Event 'INGESTED' created.", raw.Size))
	p.reporter.Event("Initial Event", ev)

	// 2. Fold the event through the stages
	ev = p.fold(ctx, ev)
	p.reporter.Event("Final Event State", ev)

	// 3. Archive routed documents; failures stay in the intake
	out := &driving.Outcome{Event: ev}
	if ev.Succeeded() {
		p.archive(ctx, out)
	} else {
		p.reporter.Fail(AgentOrchestrator, fmt.Sprintf("'%s' ended in %s and was left in place.", ev.Filename, ev.Status))
	}

	// 4. Record the outcome
	p.record(ctx, out)
	return out
}

// ProcessBatch processes documents with at most workers in flight.
// A cancelled ctx stops documents that have not started; started ones
// always finish.
func (p *Pipeline) ProcessBatch(ctx context.Context, raws []domain.RawDocument) ([]*driving.Outcome, error) {
	outcomes := make([]*driving.Outcome, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = p.Process(gctx, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, fmt.Errorf("process batch: %w", err)
	}
	return outcomes, nil
}

// fold threads the event through the stages, stopping at the first halt.
func (p *Pipeline) fold(ctx context.Context, ev *domain.Event) *domain.Event {
	for _, stage := range p.stages {
		res := stage.Run(ctx, ev)
		if res.Event != nil {
			ev = res.Event
		}
		if res.Halted() {
			logger.Debug("%s halted %s at %s: %v", stage.Name(), ev.ID, ev.Status, res.Err)
			break
		}
	}
	return ev
}

func (p *Pipeline) archive(ctx context.Context, out *driving.Outcome) {
	if p.intake == nil {
		return
	}
	ev := out.Event
	dest, err := p.intake.Archive(ctx, ev.RawDocument())
	if err != nil {
		out.ArchiveErr = err
		logger.Warn("archive %s: %v", ev.Filename, err)
		p.reporter.Fail(AgentOrchestrator, fmt.Sprintf("Could not move file '%s': %v", ev.Filename, err))
		return
	}
	out.ArchivedPath = dest
	logger.Info("archived %s to %s", ev.Filename, dest)
	p.reporter.Step(AgentOrchestrator, fmt.Sprintf("Moved '%s' to '%s'", ev.Filename, filepath.Dir(dest)))
}

func (p *Pipeline) record(ctx context.Context, out *driving.Outcome) {
	if p.store == nil {
		return
	}
	rec := domain.EventRecord{
		Event:        *out.Event,
		RunID:        p.runID,
		ArchivedPath: out.ArchivedPath,
		RecordedAt:   p.now(),
	}
	if out.ArchiveErr != nil {
		rec.ArchiveError = out.ArchiveErr.Error()
	}
	if err := p.store.Save(ctx, rec); err != nil {
		logger.Error("record event %s: %v", out.Event.ID, err)
	}
}
