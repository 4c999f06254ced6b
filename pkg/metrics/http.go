package metrics

import "time"

// HTTPMetrics records request-level observations for the file-serving
// surface. Implementations must be safe for concurrent use.
type HTTPMetrics interface {
	// RecordRequest records one completed request: its method, the status
	// code sent, wall-clock duration, and the number of body bytes written.
	RecordRequest(method string, status int, elapsed time.Duration, bytes int)

	// RecordQueueDepth records the worker pool backlog observed at
	// dispatch time.
	RecordQueueDepth(depth int)
}

// noopHTTPMetrics discards all observations.
type noopHTTPMetrics struct{}

// NewNoopHTTPMetrics returns an HTTPMetrics that does nothing. Used when
// metrics collection is disabled.
func NewNoopHTTPMetrics() HTTPMetrics {
	return noopHTTPMetrics{}
}

func (noopHTTPMetrics) RecordRequest(string, int, time.Duration, int) {}
func (noopHTTPMetrics) RecordQueueDepth(int)                          {}
