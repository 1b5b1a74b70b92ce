package layout

import (
	"fmt"

	"github.com/danlaine/gofits/internal/block"
	"github.com/danlaine/gofits/internal/dtype"
)

// Spec describes one HDU's element type and axis extents, the unit the
// layout planner works from.
type Spec struct {
	Bitpix int
	Axes   []int64
}

// HDUPlan is the pre-computed placement of every HDU described by a schema.
type HDUPlan struct {
	// Offsets[i] is the absolute byte offset of HDU i's header block.
	Offsets []int64
	// DataOffsets[i] is the absolute byte offset of HDU i's data block,
	// i.e. Offsets[i] + block.Size.
	DataOffsets []int64
	// DataSizes[i] is the on-disk size, rounded up to block.Size, of HDU
	// i's data block.
	DataSizes []int64
	// ElemSizes[i] is the per-element byte width of HDU i, |bitpix|/8.
	ElemSizes []int64
}

// Plan computes the offset of every HDU in schema order:
//
//	offsets[0]     = 0
//	offsets[i+1]   = offsets[i] + block.Size + dataSize(schema[i])
//
// It fails if any schema entry names an unsupported BITPIX or a
// non-positive axis extent.
func Plan(schema []Spec) (*HDUPlan, error) {
	p := &HDUPlan{
		Offsets:     make([]int64, len(schema)),
		DataOffsets: make([]int64, len(schema)),
		DataSizes:   make([]int64, len(schema)),
		ElemSizes:   make([]int64, len(schema)),
	}

	offset := int64(0)
	for i, spec := range schema {
		elemSize, err := dtype.ElemSize(spec.Bitpix)
		if err != nil {
			return nil, fmt.Errorf("hdu %d: %w", i, err)
		}
		for axisIdx, n := range spec.Axes {
			if n <= 0 {
				return nil, fmt.Errorf("hdu %d: axis %d extent %d is not positive", i, axisIdx, n)
			}
		}

		dataSize := block.DataSize(spec.Axes, int64(elemSize))

		p.Offsets[i] = offset
		p.DataOffsets[i] = offset + block.Size
		p.DataSizes[i] = dataSize
		p.ElemSizes[i] = int64(elemSize)

		offset += block.Size + dataSize
	}

	return p, nil
}

// TotalSize returns the file size implied by the plan: the offset one
// past the last HDU's data block, always a multiple of block.Size.
func (p *HDUPlan) TotalSize() int64 {
	if len(p.Offsets) == 0 {
		return 0
	}
	last := len(p.Offsets) - 1
	return p.DataOffsets[last] + p.DataSizes[last]
}
