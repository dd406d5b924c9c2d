// Package ratelimit throttles calls to capability providers with a token
// bucket shared by every stage that holds the same Limiter.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// Limiter is a token bucket for provider calls.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter creates a limiter allowing rps calls per second with the
// given burst. A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return &Limiter{bucket: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(rps), burst)}
}

// FromSettings builds a limiter from provider settings.
func FromSettings(s domain.ProviderSettings) *Limiter {
	return NewLimiter(s.RateLimit, s.Burst)
}

// Wait blocks until a call is allowed or ctx ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

// Ensure decorators implement the provider interfaces.
var (
	_ driven.EntityExtractor    = (*EntityExtractor)(nil)
	_ driven.DocumentClassifier = (*Classifier)(nil)
	_ driven.TextRecogniser     = (*Recogniser)(nil)
)

// EntityExtractor throttles an entity extraction provider.
type EntityExtractor struct {
	next    driven.EntityExtractor
	limiter *Limiter
}

// WrapEntityExtractor returns next behind the limiter.
func WrapEntityExtractor(next driven.EntityExtractor, limiter *Limiter) *EntityExtractor {
	return &EntityExtractor{next: next, limiter: limiter}
}

// Extract waits for a token and delegates.
func (e *EntityExtractor) Extract(ctx context.Context, text string) (domain.EntityResult, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return domain.EntityResult{}, err
	}
	return e.next.Extract(ctx, text)
}

// Classifier throttles a classification provider.
type Classifier struct {
	next    driven.DocumentClassifier
	limiter *Limiter
}

// WrapClassifier returns next behind the limiter.
func WrapClassifier(next driven.DocumentClassifier, limiter *Limiter) *Classifier {
	return &Classifier{next: next, limiter: limiter}
}

// Classify waits for a token and delegates.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Classification{}, err
	}
	return c.next.Classify(ctx, text)
}

// Recogniser throttles a text recognition provider.
type Recogniser struct {
	next    driven.TextRecogniser
	limiter *Limiter
}

// WrapRecogniser returns next behind the limiter.
func WrapRecogniser(next driven.TextRecogniser, limiter *Limiter) *Recogniser {
	return &Recogniser{next: next, limiter: limiter}
}

// Recognise waits for a token and delegates.
func (r *Recogniser) Recognise(ctx context.Context, raw domain.RawDocument) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Recognise(ctx, raw)
}
