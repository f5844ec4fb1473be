// Package ratelimit provides client-side request pacing for the hosted
// service APIs. The admin REST endpoint throttles aggressively on tenant-wide
// scans, so callers wait on a shared token bucket before each request.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket rate limiter with an enabled/disabled state.
// A zero or negative rate disables pacing entirely.
type Limiter struct {
	limiter *rate.Limiter
	rps     float64
}

// New creates a Limiter allowing rps requests per second with a burst of 1.
// Passing rps <= 0 returns a disabled limiter whose Wait and Allow never block.
func New(rps float64) *Limiter {
	if rps <= 0 {
		return &Limiter{}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		rps:     rps,
	}
}

// Enabled reports whether rate limiting is active.
func (l *Limiter) Enabled() bool {
	return l.limiter != nil
}

// RPS returns the configured requests-per-second rate, 0 when disabled.
func (l *Limiter) RPS() float64 {
	return l.rps
}

// Wait blocks until a token is available or the context is cancelled.
// Returns immediately when the limiter is disabled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting.
// Always true when the limiter is disabled.
func (l *Limiter) Allow() bool {
	if l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// Reserve reserves a token and returns the reservation so the caller can
// inspect the required delay. Returns nil when the limiter is disabled.
func (l *Limiter) Reserve() *rate.Reservation {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Reserve()
}

// String describes the limiter configuration for diagnostics.
func (l *Limiter) String() string {
	if l.limiter == nil {
		return "rate limiting disabled"
	}
	if l.rps < 1 {
		interval := time.Duration(float64(time.Second) / l.rps)
		return fmt.Sprintf("1 request per %s", interval.Round(time.Millisecond))
	}
	return fmt.Sprintf("%.2f rps", l.rps)
}
