package fits

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/danlaine/gofits/internal/dtype"
	"github.com/danlaine/gofits/internal/header"
	"github.com/danlaine/gofits/internal/ioengine"
	"github.com/danlaine/gofits/internal/layout"
)

// HDU describes one Header/Data Unit: its header record block and the
// geometry of the data block that follows it. An HDU returned by a Reader
// is read-only; one returned by a Writer accepts header and data
// mutation.
type HDU struct {
	mu sync.RWMutex

	engine   *ioengine.Engine
	index    int
	readOnly bool

	bitpix   int
	axes     []int64
	elemSize int64

	offset        int64 // start of the 2880-byte header block
	dataOffset    int64 // start of the data block
	dataBlockSize int64

	header *header.Block
}

func newWriterHDU(engine *ioengine.Engine, index int, spec HDUSpec, offset, dataOffset, dataBlockSize int64) (*HDU, error) {
	elemSize, err := dtype.ElemSize(spec.Bitpix)
	if err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}

	hb := header.NewBlock()
	if err := hb.Append("SIMPLE", "T"); err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	if err := hb.Append("BITPIX", strconv.Itoa(spec.Bitpix)); err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	if err := hb.Append("NAXIS", strconv.Itoa(len(spec.Axes))); err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	for i, n := range spec.Axes {
		key := fmt.Sprintf("NAXIS%d", i+1)
		if err := hb.Append(key, strconv.FormatInt(n, 10)); err != nil {
			return nil, fmt.Errorf("hdu %d: %w", index, err)
		}
	}
	if err := hb.Append("EXTEND", "T"); err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}

	h := &HDU{
		engine:        engine,
		index:         index,
		bitpix:        spec.Bitpix,
		axes:          append([]int64(nil), spec.Axes...),
		elemSize:      int64(elemSize),
		offset:        offset,
		dataOffset:    dataOffset,
		dataBlockSize: dataBlockSize,
		header:        hb,
	}
	if _, err := engine.WriteAt(hb.Bytes(), offset); err != nil {
		return nil, fmt.Errorf("hdu %d: writing header: %w", index, err)
	}
	return h, nil
}

func newReaderHDU(engine *ioengine.Engine, index int, hb *header.Block, offset int64) (*HDU, error) {
	bitpix, err := lookupInt(hb, "BITPIX")
	if err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	elemSize, err := dtype.ElemSize(bitpix)
	if err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	naxis, err := lookupInt(hb, "NAXIS")
	if err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}
	axes := make([]int64, naxis)
	for i := range axes {
		n, err := lookupInt(hb, fmt.Sprintf("NAXIS%d", i+1))
		if err != nil {
			return nil, fmt.Errorf("hdu %d: %w", index, err)
		}
		axes[i] = int64(n)
	}

	plan, err := layout.Plan([]layout.Spec{{Bitpix: bitpix, Axes: axes}})
	if err != nil {
		return nil, fmt.Errorf("hdu %d: %w", index, err)
	}

	return &HDU{
		engine:        engine,
		index:         index,
		readOnly:      true,
		bitpix:        bitpix,
		axes:          axes,
		elemSize:      int64(elemSize),
		offset:        offset,
		dataOffset:    offset + plan.DataOffsets[0],
		dataBlockSize: plan.DataSizes[0],
		header:        hb,
	}, nil
}

func lookupInt(hb *header.Block, key string) (int, error) {
	raw, ok := hb.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrFormatError)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, ErrFormatError)
	}
	return n, nil
}

// Index returns the HDU's zero-based position in the file.
func (h *HDU) Index() int { return h.index }

// Bitpix returns the HDU's BITPIX element-type tag.
func (h *HDU) Bitpix() int { return h.bitpix }

// Axes returns the HDU's axis lengths, NAXIS1 first.
func (h *HDU) Axes() []int64 {
	out := make([]int64, len(h.axes))
	copy(out, h.axes)
	return out
}

// Offset returns the byte offset of the HDU's header block.
func (h *HDU) Offset() int64 { return h.offset }

// DataBlockSize returns the block-aligned size of the HDU's data block.
func (h *HDU) DataBlockSize() int64 { return h.dataBlockSize }

// GetHeader returns the value of a header keyword, or ErrNotFound.
func (h *HDU) GetHeader(key string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.header.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return v, nil
}

// GetHeaderOpt returns the value of a header keyword and whether it was
// present.
func (h *HDU) GetHeaderOpt(key string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.header.Lookup(key)
}

// GetHeaderComment returns the inline comment text following a header
// keyword's value, if the record carried one.
func (h *HDU) GetHeaderComment(key string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.header.LookupComment(key)
}

// Headers returns every header record in on-disk order, the mandatory
// keywords included and END excluded. Duplicate keywords, if present, are
// all returned.
func (h *HDU) Headers() []header.Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.header.Records()
}

// SetHeader appends a new header record, or fails with ErrHeaderFull if
// the block has no remaining slot. Only valid on a Writer-owned HDU.
func (h *HDU) SetHeader(key, value string) error {
	if h.readOnly {
		return fmt.Errorf("hdu %d: %w", h.index, ErrReadOnly)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	slot := h.header.Count() // END's current slot, about to be overwritten
	if err := h.header.Append(key, value); err != nil {
		return fmt.Errorf("hdu %d: %w", h.index, err)
	}
	start := int64(slot) * header.RecordSize
	raw := h.header.Bytes()
	if _, err := h.engine.WriteAt(raw[start:start+2*header.RecordSize], h.offset+start); err != nil {
		return fmt.Errorf("hdu %d: writing header: %w", h.index, err)
	}
	return nil
}

// ValueAs parses a header keyword's value as T. It fails with
// ErrNotFound if the keyword is absent, or ErrParseError if the value
// cannot be converted.
func ValueAs[T any](h *HDU, key string) (T, error) {
	var zero T
	raw, ok := h.GetHeaderOpt(key)
	if !ok {
		return zero, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	trimmed := strings.TrimSpace(raw)

	switch any(zero).(type) {
	case string:
		return any(raw).(T), nil
	case bool:
		switch {
		case trimmed == "T" || strings.EqualFold(trimmed, "true"):
			return any(true).(T), nil
		case trimmed == "F" || strings.EqualFold(trimmed, "false"):
			return any(false).(T), nil
		}
		return zero, fmt.Errorf("%s=%q: %w", key, raw, ErrParseError)
	case int:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return zero, fmt.Errorf("%s=%q: %w", key, raw, ErrParseError)
		}
		return any(n).(T), nil
	case int64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return zero, fmt.Errorf("%s=%q: %w", key, raw, ErrParseError)
		}
		return any(n).(T), nil
	case float64:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return zero, fmt.Errorf("%s=%q: %w", key, raw, ErrParseError)
		}
		return any(f).(T), nil
	default:
		return zero, fmt.Errorf("value_as %s: unsupported type %T: %w", key, zero, ErrParseError)
	}
}
