package ioengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrCancelled is delivered to a queued job's Result when Executor.Stop is
// called before the job completes.
var ErrCancelled = errors.New("operation cancelled")

// Token identifies one queued asynchronous operation.
type Token = uuid.UUID

// Result is delivered on the channel returned by AsyncReadAt/AsyncWriteAt
// once its job completes.
type Result struct {
	N   int
	Buf []byte // populated for reads, nil for writes
	Err error
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorOptions)

type executorOptions struct {
	maxInFlight int
	ratePerSec  float64
}

func defaultExecutorOptions() *executorOptions {
	return &executorOptions{maxInFlight: 16}
}

// WithMaxInFlight bounds how many queued jobs Run dispatches concurrently.
func WithMaxInFlight(n int) ExecutorOption {
	return func(o *executorOptions) {
		if n > 0 {
			o.maxInFlight = n
		}
	}
}

// WithRateLimit throttles the executor to bytesPerSec across all
// dispatched jobs, useful when a caller shares a disk with other
// workloads. Zero (the default) disables throttling.
func WithRateLimit(bytesPerSec float64) ExecutorOption {
	return func(o *executorOptions) {
		o.ratePerSec = bytesPerSec
	}
}

type job struct {
	token     Token
	isWrite   bool
	off       int64
	buf       []byte
	done      chan Result
	rangeDone chan struct{}
}

type rangeClaim struct {
	off, end int64
	done     chan struct{}
}

// Executor queues async I/O jobs and dispatches them, bounded and
// rate-limited, when Run is invoked. It is not safe to call Run
// concurrently from more than one goroutine.
type Executor struct {
	engine *Engine
	opts   *executorOptions
	limiter *rate.Limiter

	mu       sync.Mutex
	queue    []*job
	claims   []*rangeClaim
	running  bool
	cancelFn context.CancelFunc
}

func newExecutor(e *Engine, opts ...ExecutorOption) *Executor {
	o := defaultExecutorOptions()
	for _, opt := range opts {
		opt(o)
	}
	ex := &Executor{engine: e, opts: o}
	if o.ratePerSec > 0 {
		burst := int(o.ratePerSec)
		if burst <= 0 {
			burst = 1
		}
		ex.limiter = rate.NewLimiter(rate.Limit(o.ratePerSec), burst)
	}
	return ex
}

func (ex *Executor) submit(isWrite bool, off int64, buf []byte) (Token, <-chan Result) {
	j := &job{
		token: uuid.New(),
		isWrite: isWrite,
		off:   off,
		buf:   buf,
		done:  make(chan Result, 1),
	}
	ex.mu.Lock()
	ex.queue = append(ex.queue, j)
	ex.mu.Unlock()
	return j.token, j.done
}

// Run drains every currently queued job, dispatching up to MaxInFlight of
// them concurrently, and blocks until all have completed or ctx is done.
func (ex *Executor) Run(ctx context.Context) error {
	ex.mu.Lock()
	queue := ex.queue
	ex.queue = nil
	ex.running = true
	runCtx, cancel := context.WithCancel(ctx)
	ex.cancelFn = cancel
	ex.mu.Unlock()

	defer func() {
		ex.mu.Lock()
		ex.running = false
		ex.cancelFn = nil
		ex.mu.Unlock()
	}()

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(ex.opts.maxInFlight)

	for _, j := range queue {
		j := j
		waitOn := ex.claimRange(j)
		g.Go(func() error {
			ex.dispatch(gctx, j, waitOn)
			return nil
		})
	}
	return g.Wait()
}

// Stop cancels the run context of a currently-executing Run call, if any.
// Jobs already dispatched but not yet complete finish with ErrCancelled,
// as do jobs still queued for a later Run.
func (ex *Executor) Stop() {
	ex.mu.Lock()
	cancel := ex.cancelFn
	queued := ex.queue
	ex.queue = nil
	ex.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	for _, j := range queued {
		ex.cancel(j)
	}
}

// claimRange records j's byte range and returns the completion channel of
// the most recently issued still-pending job whose range overlaps j's, or
// nil if there is none. dispatch waits on that channel before performing
// j's I/O, which is what gives overlapping ranges issue-order completion.
func (ex *Executor) claimRange(j *job) <-chan struct{} {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	live := ex.claims[:0]
	for _, c := range ex.claims {
		select {
		case <-c.done:
		default:
			live = append(live, c)
		}
	}
	ex.claims = live

	end := j.off + int64(len(j.buf))
	var waitOn <-chan struct{}
	for i := len(ex.claims) - 1; i >= 0; i-- {
		c := ex.claims[i]
		if j.off < c.end && c.off < end {
			waitOn = c.done
			break
		}
	}

	claim := &rangeClaim{off: j.off, end: end, done: make(chan struct{})}
	ex.claims = append(ex.claims, claim)
	j.rangeDone = claim.done
	return waitOn
}

func (ex *Executor) dispatch(ctx context.Context, j *job, waitOn <-chan struct{}) {
	defer close(j.rangeDone)

	if waitOn != nil {
		select {
		case <-waitOn:
		case <-ctx.Done():
			ex.cancel(j)
			return
		}
	}
	select {
	case <-ctx.Done():
		ex.cancel(j)
		return
	default:
	}
	if ex.limiter != nil {
		// WaitN rejects requests larger than the burst, so a large job
		// waits for its bytes one burst at a time.
		for remaining := len(j.buf); remaining > 0; {
			n := remaining
			if b := ex.limiter.Burst(); n > b {
				n = b
			}
			if err := ex.limiter.WaitN(ctx, n); err != nil {
				ex.cancel(j)
				return
			}
			remaining -= n
		}
	}

	ex.engine.metrics.OpsInFlight.Inc()
	defer ex.engine.metrics.OpsInFlight.Dec()

	start := time.Now()
	var res Result
	if j.isWrite {
		n, err := ex.engine.WriteAt(j.buf, j.off)
		res = Result{N: n, Err: err}
		ex.engine.metrics.OpLatency.WithLabelValues("write").Observe(time.Since(start).Seconds())
	} else {
		n, err := ex.engine.ReadAt(j.buf, j.off)
		res = Result{N: n, Buf: j.buf, Err: err}
		ex.engine.metrics.OpLatency.WithLabelValues("read").Observe(time.Since(start).Seconds())
	}
	j.done <- res
}

func (ex *Executor) cancel(j *job) {
	ex.engine.metrics.Cancelled.Inc()
	j.done <- Result{Err: fmt.Errorf("job %s: %w", j.token, ErrCancelled)}
}
