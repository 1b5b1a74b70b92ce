package fits

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danlaine/gofits/internal/ioengine"
)

// Option configures a Reader or Writer. The same option type serves both
// drivers since every knob it exposes (executor concurrency, throughput,
// metrics registration) is a property of the underlying ioengine.Engine,
// not of read or write direction.
type Option func(*config)

type config struct {
	executorOpts []ioengine.ExecutorOption
	registerer   prometheus.Registerer
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMaxInFlight bounds how many asynchronous operations a Reader or
// Writer dispatches concurrently when its executor runs.
func WithMaxInFlight(n int) Option {
	return func(c *config) {
		c.executorOpts = append(c.executorOpts, ioengine.WithMaxInFlight(n))
	}
}

// WithRateLimit throttles async I/O to bytesPerSec.
func WithRateLimit(bytesPerSec float64) Option {
	return func(c *config) {
		c.executorOpts = append(c.executorOpts, ioengine.WithRateLimit(bytesPerSec))
	}
}

// WithMetricsRegisterer registers the file's I/O metrics with reg instead
// of leaving them unregistered.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}
