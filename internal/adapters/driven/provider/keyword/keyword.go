package keyword

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// Match returns the first document type whose keyword appears in text,
// case-insensitively. Unknown if none does.
func Match(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	for _, t := range domain.KeywordPriority {
		if strings.Contains(lower, t.Keyword()) {
			return t
		}
	}
	return domain.DocumentUnknown
}

// source is a goroutine-safe random source.
type source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSource(seed uint64) *source {
	return &source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func randomSource() *source {
	return newSource(rand.Uint64())
}

// intRange returns an int in [lo, hi].
func (s *source) intRange(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}

// floatRange returns a float in [lo, hi).
func (s *source) floatRange(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}
