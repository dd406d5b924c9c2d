package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

func TestCallPolicy_Do_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := CallPolicy{Retries: 2}.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCallPolicy_Do_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	policy := CallPolicy{Retries: 2, Backoff: time.Millisecond}

	err := policy.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestCallPolicy_Do_ExhaustsRetries(t *testing.T) {
	calls := 0
	cause := errors.New("provider down")
	policy := CallPolicy{Retries: 2, Backoff: time.Millisecond}

	err := policy.Do(context.Background(), "entity extraction", func(context.Context) error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "entity extraction failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestCallPolicy_Do_InputErrorsNotRetried(t *testing.T) {
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrUnsupportedType} {
		calls := 0
		err := CallPolicy{Retries: 3}.Do(context.Background(), "op", func(context.Context) error {
			calls++
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	}
}

func TestCallPolicy_Do_TimeoutPerAttempt(t *testing.T) {
	policy := CallPolicy{Timeout: 10 * time.Millisecond}

	err := policy.Do(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallPolicy_Do_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := CallPolicy{Retries: 5, Backoff: time.Hour}

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := policy.Do(ctx, "op", func(context.Context) error {
		calls++
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicyFromSettings(t *testing.T) {
	s := domain.ProviderSettings{Timeout: time.Second, Retries: 4, Backoff: 2 * time.Second}

	p := PolicyFromSettings(s)

	assert.Equal(t, CallPolicy{Timeout: time.Second, Retries: 4, Backoff: 2 * time.Second}, p)
}

func TestPause(t *testing.T) {
	assert.NoError(t, pause(context.Background(), 0))
	assert.NoError(t, pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pause(ctx, time.Hour), context.Canceled)
}
