package http

import "context"

// Metrics represents an interface for counting request pool activity.
type Metrics interface {
	IncrementCounter(ctx context.Context, name string, labels ...string)
}

// Logger is the logging surface the pool needs.
type Logger interface {
	Debugf(format string, args ...any)
}

const (
	MetricPoolGets = "app_request_pool_gets_total"
	MetricPoolPuts = "app_request_pool_puts_total"
)
