// Package ratelimit paces upstream requests. The audit engine inserts a
// fixed delay between follower resolutions as deliberate backpressure
// against upstream rate limiting.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for request pacing
type Limiter interface {
	// Wait blocks until the pacing policy allows another request
	Wait()
	// Reset clears the pacing state
	Reset()
}

// Interval enforces a minimum delay between consecutive requests. The
// first request passes immediately.
type Interval struct {
	delay time.Duration
	last  time.Time
	mu    sync.Mutex

	// sleep is replaceable for testing
	sleep func(time.Duration)
}

// NewInterval creates an Interval limiter with the given minimum delay
func NewInterval(delay time.Duration) *Interval {
	return &Interval{
		delay: delay,
		sleep: time.Sleep,
	}
}

// Wait blocks until at least the configured delay has passed since the
// previous request.
func (i *Interval) Wait() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.last.IsZero() {
		if wait := i.delay - time.Since(i.last); wait > 0 {
			i.sleep(wait)
		}
	}
	i.last = time.Now()
}

// Reset clears the last-request timestamp
func (i *Interval) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last = time.Time{}
}
