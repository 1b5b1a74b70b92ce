package fits

import (
	"fmt"

	"github.com/danlaine/gofits/internal/dtype"
	"github.com/danlaine/gofits/internal/ioengine"
)

// View gives typed access to one HDU's data block, decoding and encoding
// raw bytes through T's FITS network-byte-order representation.
type View[T dtype.Numeric] struct {
	hdu *HDU
}

// ReadAt reads n elements starting at index and decodes them as T.
func (v *View[T]) ReadAt(index []int64, n int) ([]T, error) {
	raw := make([]byte, n*dtype.Sizeof[T]())
	if _, err := v.hdu.ReadData(index, raw); err != nil {
		return nil, err
	}
	return dtype.Decode[T](raw)
}

// WriteAt encodes values and writes them at index.
func (v *View[T]) WriteAt(index []int64, values []T) (int, error) {
	return v.hdu.WriteData(index, dtype.Encode(values))
}

// AsyncReadAt queues a read of n elements at index, returning the raw
// byte-level token and channel; decode the arriving Result.Buf with
// dtype.Decode[T].
func (v *View[T]) AsyncReadAt(index []int64, n int) (ioengine.Token, <-chan ioengine.Result, error) {
	return v.hdu.AsyncReadData(index, n*dtype.Sizeof[T]())
}

// AsyncWriteAt queues values, encoded as T, to be written at index.
func (v *View[T]) AsyncWriteAt(index []int64, values []T) (ioengine.Token, <-chan ioengine.Result, error) {
	return v.hdu.AsyncWriteData(index, dtype.Encode(values))
}

// Visitor dispatches on an HDU's BITPIX to the matching typed view. Apply
// calls exactly one of these methods, chosen by the HDU's Bitpix.
type Visitor interface {
	VisitUint8(*View[uint8]) error
	VisitInt16(*View[int16]) error
	VisitInt32(*View[int32]) error
	VisitInt64(*View[int64]) error
	VisitFloat32(*View[float32]) error
	VisitFloat64(*View[float64]) error
}

// Apply dispatches v against h's data using the View matching h's
// Bitpix. It fails with ErrUnsupportedBitpix if, somehow, the HDU
// carries a BITPIX outside the six standard values.
func (h *HDU) Apply(v Visitor) error {
	switch h.bitpix {
	case 8:
		return v.VisitUint8(&View[uint8]{hdu: h})
	case 16:
		return v.VisitInt16(&View[int16]{hdu: h})
	case 32:
		return v.VisitInt32(&View[int32]{hdu: h})
	case 64:
		return v.VisitInt64(&View[int64]{hdu: h})
	case -32:
		return v.VisitFloat32(&View[float32]{hdu: h})
	case -64:
		return v.VisitFloat64(&View[float64]{hdu: h})
	default:
		return fmt.Errorf("bitpix=%d: %w", h.bitpix, ErrUnsupportedBitpix)
	}
}
