package ioengine

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/danlaine/gofits/internal/metrics"
)

// ErrClosed is returned by any operation attempted after Close.
var ErrClosed = errors.New("engine is closed")

// Engine owns one open file and the Executor that drives its async I/O.
type Engine struct {
	path     string
	file     *os.File
	writable bool
	executor *Executor
	metrics  *metrics.IOMetrics

	mu     sync.RWMutex
	closed bool
}

// Open opens path read-only. The file must already exist.
func Open(path string, opts ...ExecutorOption) (*Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return newEngine(path, f, false, opts), nil
}

// Create creates path for writing, truncating any pre-existing content.
func Create(path string, opts ...ExecutorOption) (*Engine, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return newEngine(path, f, true, opts), nil
}

func newEngine(path string, f *os.File, writable bool, opts []ExecutorOption) *Engine {
	e := &Engine{
		path:     path,
		file:     f,
		writable: writable,
		metrics:  metrics.New(path),
	}
	e.executor = newExecutor(e, opts...)
	return e
}

// Path returns the underlying file's path.
func (e *Engine) Path() string { return e.path }

// Writable reports whether the engine was opened for writing.
func (e *Engine) Writable() bool { return e.writable }

// Metrics returns the engine's Prometheus collectors so a caller can
// register them with its own registry.
func (e *Engine) Metrics() *metrics.IOMetrics { return e.metrics }

// Executor returns the engine's async I/O executor.
func (e *Engine) Executor() *Executor { return e.executor }

// Size returns the current on-disk size of the file.
func (e *Engine) Size() (int64, error) {
	st, err := e.file.Stat()
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

// ReadAt performs a synchronous positional read at off. It shares no
// cursor with any other ReadAt or WriteAt call.
func (e *Engine) ReadAt(p []byte, off int64) (int, error) {
	if e.isClosed() {
		return 0, ErrClosed
	}
	n, err := e.file.ReadAt(p, off)
	if n > 0 {
		e.metrics.BytesRead.Add(float64(n))
	}
	return n, err
}

// WriteAt performs a synchronous positional write at off.
func (e *Engine) WriteAt(p []byte, off int64) (int, error) {
	if e.isClosed() {
		return 0, ErrClosed
	}
	n, err := e.file.WriteAt(p, off)
	if n > 0 {
		e.metrics.BytesWritten.Add(float64(n))
	}
	return n, err
}

// AsyncReadAt queues a positional read of n bytes at off. Its completion
// is delivered on the returned channel once the caller invokes
// Executor.Run.
func (e *Engine) AsyncReadAt(n int, off int64) (Token, <-chan Result) {
	return e.executor.submit(false, off, make([]byte, n))
}

// AsyncWriteAt queues a positional write of p at off.
func (e *Engine) AsyncWriteAt(p []byte, off int64) (Token, <-chan Result) {
	return e.executor.submit(true, off, p)
}

func (e *Engine) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

// Close stops the executor, cancelling any pending async operations, and
// closes the underlying file.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.executor.Stop()
	return e.file.Close()
}
