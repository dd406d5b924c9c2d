package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Poller implements the interface.
var _ driving.Poller = (*Poller)(nil)

// Poller feeds the pipeline from the intake one document per cycle.
// Cycles run on a fixed interval; a watcher, when present, wakes the
// loop early as soon as something lands in the intake.
type Poller struct {
	pipeline driving.Pipeline
	watcher  driven.IntakeWatcher
	interval time.Duration
	reporter driven.StepReporter

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}

	statsMu sync.Mutex
	stats   driving.PollStats
}

// NewPoller creates a poll loop. The watcher may be nil.
func NewPoller(
	pipeline driving.Pipeline,
	watcher driven.IntakeWatcher,
	interval time.Duration,
	reporter driven.StepReporter,
	runID string,
) *Poller {
	return &Poller{
		pipeline: pipeline,
		watcher:  watcher,
		interval: interval,
		reporter: reporterOrNop(reporter),
		stats:    driving.PollStats{RunID: runID},
	}
}

// Start runs poll cycles. It blocks until Stop is called or ctx is
// cancelled, and always lets the document in flight finish.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil // Already running
	}
	if p.interval <= 0 {
		p.mu.Unlock()
		return fmt.Errorf("poll interval must be positive, got %s", p.interval)
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})
	stopCh, done := p.stopCh, p.done
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
		close(done)
	}()

	return p.run(ctx, stopCh)
}

// Stop ends the loop after the current cycle and waits for it.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
	done := p.done
	p.mu.Unlock()

	<-done
	return nil
}

// Stats returns counters for the current run.
func (p *Poller) Stats() driving.PollStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// run is the main poll loop.
func (p *Poller) run(ctx context.Context, stopCh <-chan struct{}) error {
	var wake <-chan struct{}
	if p.watcher != nil {
		ch, err := p.watcher.Watch(ctx)
		if err != nil {
			logger.Warn("intake watcher unavailable, polling only: %v", err)
		} else {
			wake = ch
		}
	}

	logger.Info("polling every %s (watcher: %t)", p.interval, wake != nil)
	for {
		p.cycle(ctx)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-stopCh:
			timer.Stop()
			return nil
		case <-timer.C:
		case _, ok := <-wake:
			timer.Stop()
			if !ok {
				wake = nil
			}
			logger.Debug("intake watcher woke poll loop")
		}
	}
}

// cycle claims and processes at most one document.
func (p *Poller) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	out, err := p.pipeline.RunOnce(ctx)

	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.Cycles++
	if err != nil {
		logger.Warn("poll cycle %d failed: %v", p.stats.Cycles, err)
		p.reporter.Fail(AgentIngestor, fmt.Sprintf("Poll failed: %v", err))
		return
	}
	if out == nil {
		return
	}
	p.stats.Processed++
	if out.Event != nil && out.Event.Status.IsFailure() {
		p.stats.Failed++
	}
	if out.ArchiveErr != nil {
		p.stats.ArchiveErrors++
	}
}
