package ratelimit

import (
	"sync"
	"time"
)

type attemptRecord struct {
	count        int
	lastAttempt  time.Time
	blockedUntil time.Time
}

// Limiter counts attempts per client inside a sliding window and blocks a
// client for blockDuration once it exceeds maxAttempts. Stale records are
// pruned while checking, so no background goroutine is needed.
type Limiter struct {
	mu             sync.Mutex
	attempts       map[string]*attemptRecord
	maxAttempts    int
	windowDuration time.Duration
	blockDuration  time.Duration
	lastPrune      time.Time
	now            func() time.Time
}

const pruneEvery = time.Minute

func NewLimiter(maxAttempts int, windowDuration, blockDuration time.Duration) *Limiter {
	return &Limiter{
		attempts:       make(map[string]*attemptRecord),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		blockDuration:  blockDuration,
		now:            time.Now,
	}
}

// Check records an attempt and reports whether it is allowed. When it is not,
// the remaining block duration is returned.
func (l *Limiter) Check(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	record, exists := l.attempts[clientID]
	if !exists {
		record = &attemptRecord{lastAttempt: now}
		l.attempts[clientID] = record
	}

	if now.Before(record.blockedUntil) {
		return false, record.blockedUntil.Sub(now)
	}

	if now.Sub(record.lastAttempt) > l.windowDuration {
		record.count = 0
	}

	record.count++
	record.lastAttempt = now

	if record.count > l.maxAttempts {
		record.blockedUntil = now.Add(l.blockDuration)
		return false, l.blockDuration
	}

	return true, 0
}

func (l *Limiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, clientID)
}

func (l *Limiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < pruneEvery {
		return
	}
	l.lastPrune = now

	for clientID, record := range l.attempts {
		if now.Sub(record.lastAttempt) > l.windowDuration*2 && now.After(record.blockedUntil) {
			delete(l.attempts, clientID)
		}
	}
}
