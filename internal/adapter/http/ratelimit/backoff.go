package ratelimit

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Backoff computes an exponential delay applied after failed attempts.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func NewBackoff(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return b.Min
	}

	duration := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if duration > float64(b.Max) {
		duration = float64(b.Max)
	}

	if b.Jitter {
		duration *= 0.5 + rand.Float64()*0.5
	}

	return time.Duration(duration)
}

// FailureTracker counts consecutive failures per client. Safe for concurrent use.
type FailureTracker struct {
	mu       sync.Mutex
	failures map[string]int
}

func NewFailureTracker() *FailureTracker {
	return &FailureTracker{failures: make(map[string]int)}
}

func (t *FailureTracker) Failures(clientID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[clientID]
}

func (t *FailureTracker) RecordFailure(clientID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[clientID]++
	return t.failures[clientID]
}

func (t *FailureTracker) RecordSuccess(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, clientID)
}
