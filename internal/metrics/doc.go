// Package metrics instruments the I/O engine with Prometheus collectors:
// bytes transferred, operations in flight, and completion latency. All
// collectors are created unregistered; callers that want them exported
// register the *IOMetrics returned by New with their own registry.
package metrics
