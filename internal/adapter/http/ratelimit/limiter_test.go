package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(maxAttempts int, window, block time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(maxAttempts, window, block)
	l.now = clock.Now
	return l, clock
}

func tracked(l *Limiter) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

func TestLimiter_Check_FirstAttempt(t *testing.T) {
	limiter, _ := newTestLimiter(3, time.Minute, 5*time.Minute)

	allowed, duration := limiter.Check("client1")

	assert.True(t, allowed)
	assert.Equal(t, time.Duration(0), duration)
}

func TestLimiter_Check_BlocksAfterMaxAttempts(t *testing.T) {
	limiter, _ := newTestLimiter(3, time.Minute, 5*time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Check("client1")
		require.True(t, allowed)
	}

	allowed, duration := limiter.Check("client1")

	assert.False(t, allowed)
	assert.Equal(t, 5*time.Minute, duration)
}

func TestLimiter_Check_RemainingBlockDuration(t *testing.T) {
	limiter, clock := newTestLimiter(2, time.Minute, 10*time.Minute)

	limiter.Check("client1")
	limiter.Check("client1")
	limiter.Check("client1")

	clock.Advance(time.Minute)
	allowed, remaining := limiter.Check("client1")

	assert.False(t, allowed)
	assert.Equal(t, 9*time.Minute, remaining)
}

func TestLimiter_Check_ResetsAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute, 5*time.Minute)

	limiter.Check("client1")
	limiter.Check("client1")
	limiter.Check("client1")

	clock.Advance(time.Minute + time.Second)
	allowed, _ := limiter.Check("client1")

	assert.True(t, allowed)
}

func TestLimiter_Check_BlockExpires(t *testing.T) {
	limiter, clock := newTestLimiter(2, time.Hour, time.Minute)

	limiter.Check("client1")
	limiter.Check("client1")
	allowed, _ := limiter.Check("client1")
	require.False(t, allowed)

	clock.Advance(time.Minute)
	allowed, _ = limiter.Check("client1")

	// the window is still open, so the counter keeps growing
	assert.False(t, allowed)

	limiter.Reset("client1")
	allowed, _ = limiter.Check("client1")
	assert.True(t, allowed)
}

func TestLimiter_Check_ClientsAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute, 5*time.Minute)

	limiter.Check("client1")
	allowed, _ := limiter.Check("client1")
	require.False(t, allowed)

	allowed, _ = limiter.Check("client2")
	assert.True(t, allowed)
}

func TestLimiter_Reset_NonExistentClient(t *testing.T) {
	limiter, _ := newTestLimiter(3, time.Minute, 5*time.Minute)

	limiter.Reset("nonexistent")
	allowed, _ := limiter.Check("nonexistent")

	assert.True(t, allowed)
}

func TestLimiter_PrunesStaleRecords(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute, time.Minute)

	limiter.Check("client1")
	limiter.Check("client2")
	require.Equal(t, 2, tracked(limiter))

	clock.Advance(3 * time.Minute)
	limiter.Check("client3")

	assert.Equal(t, 1, tracked(limiter))
}

func TestLimiter_PreservesActiveRecords(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute, time.Minute)

	limiter.Check("client1")
	clock.Advance(90 * time.Second)
	limiter.Check("client2")

	assert.Equal(t, 2, tracked(limiter))
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewLimiter(100, time.Minute, 5*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Check("concurrent-client")
			}
		}()
	}
	wg.Wait()

	limiter.mu.Lock()
	record, exists := limiter.attempts["concurrent-client"]
	limiter.mu.Unlock()

	require.True(t, exists)
	assert.Equal(t, 100, record.count)
}
