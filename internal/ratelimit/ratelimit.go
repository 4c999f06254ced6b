// Package ratelimit provides global request rate limiting for the HTTP
// server using the token bucket algorithm.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps golang.org/x/time/rate with the server's conventions:
// a zero sustained rate disables limiting, and the fast path (Allow) is
// what the request middleware uses so refused requests are rejected with
// a status code instead of queueing.
//
// Thread safety: all methods are safe for concurrent use.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing requestsPerSecond sustained throughput
// with the given burst capacity.
//
// Special cases:
//   - requestsPerSecond = 0: no limiting (effectively unlimited)
//   - burst = 0 with a nonzero rate: burst defaults to the sustained rate
func New(requestsPerSecond, burst uint) *Limiter {
	if requestsPerSecond == 0 {
		// rate.Inf has edge cases around burst handling; a very large
		// finite rate behaves the same in practice.
		requestsPerSecond = 1_000_000_000
		burst = requestsPerSecond
	}
	if burst == 0 {
		burst = requestsPerSecond
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst)),
	}
}

// Allow reports whether one more request may proceed, consuming a token
// when it may. This never blocks; the middleware maps false to 429.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a token is available or ctx is done. Used by callers
// that prefer throttling over rejection.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Tokens returns the tokens currently available. Monitoring only; the
// value may change immediately after the call.
func (l *Limiter) Tokens() float64 {
	return l.limiter.Tokens()
}
