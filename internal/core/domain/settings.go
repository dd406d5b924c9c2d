package domain

import (
	"fmt"
	"time"
)

// PipelineSettings is the explicit configuration handed to the pipeline
// at construction.
type PipelineSettings struct {
	// IntakeDir is the directory polled for new documents.
	IntakeDir string

	// ProcessedDir receives documents once they are routed.
	ProcessedDir string

	// PollInterval is the pause between poll cycles.
	PollInterval time.Duration

	// Workers bounds concurrent documents in batch mode.
	Workers int

	// Provider configures capability provider calls.
	Provider ProviderSettings

	// SimulateLatency enables the simulated processing delays.
	SimulateLatency bool

	// DataDir holds the event audit database.
	DataDir string
}

// ProviderSettings configures calls to capability providers.
type ProviderSettings struct {
	// Timeout bounds a single provider call.
	Timeout time.Duration

	// Retries is the number of extra attempts after a failure.
	Retries int

	// Backoff is the delay before the first retry; it doubles each attempt.
	Backoff time.Duration

	// RateLimit is the sustained request rate per second. Zero disables it.
	RateLimit float64

	// Burst is the maximum burst size for the rate limiter.
	Burst int
}

// StageLatency holds the simulated delay for each agent.
type StageLatency struct {
	Extraction       time.Duration
	EntityExtraction time.Duration
	Classification   time.Duration
	Routing          time.Duration
}

// DefaultPipelineSettings returns sensible defaults for the pipeline.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		IntakeDir:    "documents_to_process",
		ProcessedDir: "processed_documents",
		PollInterval: 5 * time.Second,
		Workers:      4,
		Provider: ProviderSettings{
			Timeout:   10 * time.Second,
			Retries:   2,
			Backoff:   500 * time.Millisecond,
			RateLimit: 5,
			Burst:     5,
		},
		SimulateLatency: true,
	}
}

// Latency returns the per-agent simulated delays.
// All delays are zero when simulation is off.
func (s PipelineSettings) Latency() StageLatency {
	if !s.SimulateLatency {
		return StageLatency{}
	}
	return StageLatency{
		Extraction:       1 * time.Second,
		EntityExtraction: 2 * time.Second,
		Classification:   1 * time.Second,
		Routing:          1 * time.Second,
	}
}

// Validate checks the settings are usable.
func (s PipelineSettings) Validate() error {
	switch {
	case s.IntakeDir == "":
		return fmt.Errorf("%w: intake directory is empty", ErrInvalidInput)
	case s.ProcessedDir == "":
		return fmt.Errorf("%w: processed directory is empty", ErrInvalidInput)
	case s.IntakeDir == s.ProcessedDir:
		return fmt.Errorf("%w: intake and processed directories must differ", ErrInvalidInput)
	case s.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidInput)
	case s.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidInput)
	case s.Provider.Retries < 0:
		return fmt.Errorf("%w: provider retries must not be negative", ErrInvalidInput)
	case s.Provider.Timeout <= 0:
		return fmt.Errorf("%w: provider timeout must be positive", ErrInvalidInput)
	case s.Provider.Timeout <= s.Latency().EntityExtraction:
		return fmt.Errorf("%w: provider timeout %s must exceed the simulated entity extraction latency %s",
			ErrInvalidInput, s.Provider.Timeout, s.Latency().EntityExtraction)
	}
	return nil
}
