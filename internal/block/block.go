package block

import (
	"errors"
	"fmt"
)

// Size is the number of bytes in one FITS block. Every header block and
// every data block occupies an integral number of Size-byte units.
const Size = 2880

// ErrOutOfBounds is returned when an index exceeds the declared axis
// extents, or addresses more dimensions than the shape declares.
var ErrOutOfBounds = errors.New("index out of bounds")

// RoundUp rounds n up to the next multiple of Size. A value already
// aligned to Size is returned unchanged.
func RoundUp(n int64) int64 {
	if n%Size == 0 {
		return n
	}
	return (n/Size + 1) * Size
}

// Offset computes the byte offset of the element addressed by index within
// a data block whose element extents are axes and whose element size in
// bytes is elemSize. axes is ordered NAXIS1-first (axes[0] carries the
// largest stride); index may address fewer dimensions than axes, in which
// case the unspecified trailing dimensions are treated as zero and the
// returned offset addresses the start of the corresponding sub-slab.
//
// The stride assignment mirrors lib_fits's hdu::calculate_offset: for
// dimension d, stride[d] is the product of axes[1] through axes[naxis-1-d]
// -- the product always starts at axes[1], never axes[0], regardless of d.
// For naxis<=2 this is indistinguishable from a textbook row-major mapping
// (stride[d] = product of axes strictly right of d), which is why it only
// shows up once naxis>=3: the middle dimensions get a different stride
// than the axes-strictly-to-the-right rule would give them.
func Offset(index []int64, axes []int64, elemSize int64) (int64, error) {
	naxis := len(axes)
	if len(index) > naxis {
		return 0, fmt.Errorf("index has %d dimensions, axes has %d: %w", len(index), naxis, ErrOutOfBounds)
	}
	for d, i := range index {
		if i < 0 || i >= axes[d] {
			return 0, fmt.Errorf("index[%d]=%d out of range [0,%d): %w", d, i, axes[d], ErrOutOfBounds)
		}
	}

	strides := make([]int64, naxis)
	for d := 0; d < naxis; d++ {
		stride := int64(1)
		for j := 1; j <= naxis-1-d; j++ {
			stride *= axes[j]
		}
		strides[d] = stride
	}

	var offset int64
	for d, i := range index {
		offset += i * strides[d]
	}
	return offset * elemSize, nil
}

// DataSize returns the on-disk size, rounded up to Size, of a dense
// row-major array of the given axes with elemSize bytes per element.
func DataSize(axes []int64, elemSize int64) int64 {
	n := elemSize
	for _, a := range axes {
		n *= a
	}
	return RoundUp(n)
}
