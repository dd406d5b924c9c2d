package services

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator returns a new unique identifier on each call.
type IDGenerator func() string

// NewEventIDGenerator returns a generator of lexically sortable event
// IDs. It is safe for concurrent use.
func NewEventIDGenerator() IDGenerator {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Now(), entropy).String()
	}
}

// NewRunID returns an identifier for one pipeline run.
func NewRunID() string {
	return uuid.New().String()
}
