package fits

import (
	"context"
	"fmt"

	"github.com/danlaine/gofits/internal/header"
	"github.com/danlaine/gofits/internal/ioengine"
)

// Reader drives sequential discovery of a FITS file's HDUs: it reads
// each header block in turn, derives that HDU's data block size from its
// mandatory keywords, and seeks past the data block to the next header.
type Reader struct {
	engine *ioengine.Engine
	path   string
	hdus   []*HDU
}

// Open reads every HDU's header from path and returns a Reader
// positioned to serve them. It fails with ErrFormatError if any header
// block is missing its END record or a mandatory keyword, or carries a
// non-numeric value where a number is required.
func Open(path string, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts)
	engine, err := ioengine.Open(path, cfg.executorOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.registerer != nil {
		_ = engine.Metrics().Register(cfg.registerer)
	}

	size, err := engine.Size()
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var hdus []*HDU
	offset := int64(0)
	for offset < size {
		raw := make([]byte, header.BlockSize)
		n, err := engine.ReadAt(raw, offset)
		if err != nil || int64(n) < header.BlockSize {
			engine.Close()
			return nil, fmt.Errorf("%s: hdu %d at offset %d: %w", path, len(hdus), offset, ErrFormatError)
		}
		hb, err := header.ParseBlock(raw)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("%s: hdu %d at offset %d: %w: %w", path, len(hdus), offset, ErrFormatError, err)
		}
		hdu, err := newReaderHDU(engine, len(hdus), hb, offset)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		hdus = append(hdus, hdu)
		offset = hdu.dataOffset + hdu.dataBlockSize
	}

	return &Reader{engine: engine, path: path, hdus: hdus}, nil
}

// NumHDU returns how many HDUs the file contains.
func (r *Reader) NumHDU() int { return len(r.hdus) }

// HDU returns the i'th HDU, or ErrOutOfBounds if i is out of range.
func (r *Reader) HDU(i int) (*HDU, error) {
	if i < 0 || i >= len(r.hdus) {
		return nil, fmt.Errorf("hdu %d: %w", i, ErrOutOfBounds)
	}
	return r.hdus[i], nil
}

// HDUs returns every HDU in file order.
func (r *Reader) HDUs() []*HDU {
	out := make([]*HDU, len(r.hdus))
	copy(out, r.hdus)
	return out
}

// Run dispatches every queued asynchronous read across this Reader's
// HDUs and blocks until all complete or ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	return r.engine.Executor().Run(ctx)
}

// Stop cancels a Run in progress; its in-flight reads complete with
// ErrCancelled.
func (r *Reader) Stop() { r.engine.Executor().Stop() }

// Close releases the underlying file handle.
func (r *Reader) Close() error { return r.engine.Close() }
