package services

import (
	"context"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Stage is one agent in the pipeline. It receives the event in the
// status its predecessor left it and returns the tagged result.
type Stage interface {
	// Name returns the agent name used in the step log.
	Name() string

	// Run advances the event by one stage.
	Run(ctx context.Context, ev *domain.Event) domain.StageResult
}

// nopReporter discards all progress output.
type nopReporter struct{}

func (nopReporter) Step(string, string)         {}
func (nopReporter) Fail(string, string)         {}
func (nopReporter) Event(string, *domain.Event) {}

func reporterOrNop(r driven.StepReporter) driven.StepReporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}
