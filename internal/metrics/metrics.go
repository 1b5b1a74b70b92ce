package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IOMetrics holds the Prometheus collectors for one I/O engine instance.
type IOMetrics struct {
	BytesRead    prometheus.Counter
	BytesWritten prometheus.Counter
	OpsInFlight  prometheus.Gauge
	OpLatency    *prometheus.HistogramVec
	Cancelled    prometheus.Counter
}

// New creates a fresh, unregistered set of collectors labeled with path,
// so multiple open files report distinct series when registered together.
func New(path string) *IOMetrics {
	labels := prometheus.Labels{"path": path}
	m := &IOMetrics{
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "gofits",
			Subsystem:   "ioengine",
			Name:        "bytes_read_total",
			Help:        "Total bytes read via positional reads.",
			ConstLabels: labels,
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "gofits",
			Subsystem:   "ioengine",
			Name:        "bytes_written_total",
			Help:        "Total bytes written via positional writes.",
			ConstLabels: labels,
		}),
		OpsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "gofits",
			Subsystem:   "ioengine",
			Name:        "ops_in_flight",
			Help:        "Number of async operations currently dispatched to the executor.",
			ConstLabels: labels,
		}),
		OpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "gofits",
			Subsystem:   "ioengine",
			Name:        "op_latency_seconds",
			Help:        "Latency of a positional read or write from dispatch to completion.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"op"}),
		Cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "gofits",
			Subsystem:   "ioengine",
			Name:        "ops_cancelled_total",
			Help:        "Total async operations completed with a cancellation error.",
			ConstLabels: labels,
		}),
	}
	// Pre-create the read and write latency series so the histogram is
	// exported before its first observation.
	m.OpLatency.WithLabelValues("read")
	m.OpLatency.WithLabelValues("write")
	return m
}

// Register adds every collector in m to reg.
func (m *IOMetrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.BytesRead, m.BytesWritten, m.OpsInFlight, m.OpLatency, m.Cancelled} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
