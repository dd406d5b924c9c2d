package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/logger"
)

// CallPolicy bounds calls to capability providers.
// The zero value makes a single attempt with no deadline.
type CallPolicy struct {
	// Timeout bounds each attempt. Zero means no deadline.
	Timeout time.Duration

	// Retries is the number of extra attempts after a failure.
	Retries int

	// Backoff is the delay before the first retry. It doubles each time.
	Backoff time.Duration
}

// PolicyFromSettings builds a CallPolicy from provider settings.
func PolicyFromSettings(s domain.ProviderSettings) CallPolicy {
	return CallPolicy{
		Timeout: s.Timeout,
		Retries: s.Retries,
		Backoff: s.Backoff,
	}
}

// Do runs fn until it succeeds, the retries are spent, or ctx ends.
// Input errors are not retried.
func (p CallPolicy) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	backoff := p.Backoff
	attempts := p.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = p.attempt(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		if !retryable(lastErr) || attempt == attempts {
			break
		}

		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v", name, attempt, attempts, backoff, lastErr)
		if err := pause(ctx, backoff); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		backoff *= 2
	}

	if attempts == 1 {
		return fmt.Errorf("%s: %w", name, lastErr)
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}

func (p CallPolicy) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return fn(ctx)
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrUnsupportedType)
}

// pause waits for d or until ctx ends.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
