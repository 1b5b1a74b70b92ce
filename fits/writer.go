package fits

import (
	"context"
	"fmt"
	"os"

	"github.com/danlaine/gofits/internal/ioengine"
	"github.com/danlaine/gofits/internal/layout"
)

// Writer drives creation of a new FITS file from a fixed Schema: every
// HDU's header and geometry are committed to disk eagerly at Create
// time, in the mandatory keyword order SIMPLE, BITPIX, NAXIS, NAXISn...,
// EXTEND, END. Only data, and any header records beyond that preamble,
// are written afterward.
type Writer struct {
	engine *ioengine.Engine
	path   string
	hdus   []*HDU
}

// Create creates path and writes every HDU's header block up front, per
// schema, in file order. It fails with ErrUnsupportedBitpix if any
// HDUSpec names an unsupported BITPIX, and removes the partially written
// file on any failure.
func Create(path string, schema Schema, opts ...Option) (*Writer, error) {
	cfg := newConfig(opts)

	specs := make([]layout.Spec, len(schema))
	for i, s := range schema {
		specs[i] = layout.Spec{Bitpix: s.Bitpix, Axes: s.Axes}
	}
	plan, err := layout.Plan(specs)
	if err != nil {
		return nil, err
	}

	engine, err := ioengine.Create(path, cfg.executorOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.registerer != nil {
		_ = engine.Metrics().Register(cfg.registerer)
	}

	hdus := make([]*HDU, len(schema))
	for i, spec := range schema {
		hdu, err := newWriterHDU(engine, i, spec, plan.Offsets[i], plan.DataOffsets[i], plan.DataSizes[i])
		if err != nil {
			engine.Close()
			os.Remove(path)
			return nil, err
		}
		hdus[i] = hdu
	}

	return &Writer{engine: engine, path: path, hdus: hdus}, nil
}

// NumHDU returns how many HDUs the schema declared.
func (w *Writer) NumHDU() int { return len(w.hdus) }

// HDU returns the i'th HDU, or ErrOutOfBounds if i is out of range.
func (w *Writer) HDU(i int) (*HDU, error) {
	if i < 0 || i >= len(w.hdus) {
		return nil, fmt.Errorf("hdu %d: %w", i, ErrOutOfBounds)
	}
	return w.hdus[i], nil
}

// HDUs returns every HDU in file order.
func (w *Writer) HDUs() []*HDU {
	out := make([]*HDU, len(w.hdus))
	copy(out, w.hdus)
	return out
}

// Run dispatches every queued asynchronous write across this Writer's
// HDUs and blocks until all complete or ctx is done.
func (w *Writer) Run(ctx context.Context) error {
	return w.engine.Executor().Run(ctx)
}

// Stop cancels a Run in progress; its in-flight writes complete with
// ErrCancelled.
func (w *Writer) Stop() { w.engine.Executor().Stop() }

// Close releases the underlying file handle.
func (w *Writer) Close() error { return w.engine.Close() }
