package server

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/marmos91/staticd/internal/logger"
)

type contextKey int

const requestIDKey contextKey = iota

// statusClientClosedRequest marks requests abandoned by the client before
// anything was written. Non-standard, borrowed from nginx; it appears only
// in logs and metrics, never on the wire.
const statusClientClosedRequest = 499

// requestID tags every request with a fresh UUID so concurrent log lines
// can be correlated. The ID never leaves the process; it is a logging aid,
// not part of the wire contract.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestIDKey, uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFrom returns the request's ID, or "-" when untagged.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id[:8]
	}
	return "-"
}

// instrument emits the per-request log line and metrics observation:
// method, path, resulting status, and elapsed wall-clock time.
//
// Logging sits outside the response path: a failure to log (e.g. a broken
// log destination) never affects the response already written.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			// Nothing was written: the client went away first.
			status = statusClientClosedRequest
		}
		logger.Info("[%d] %s %s\t%dµs (%s)",
			status, r.Method, r.URL.Path, elapsed.Microseconds(),
			requestIDFrom(r.Context()))
		s.metrics.RecordRequest(r.Method, status, elapsed, ww.BytesWritten())
	})
}

// rateLimit refuses requests above the configured throughput with an empty
// 429. Installed only when a rate limit is configured.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeEmpty(w, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
