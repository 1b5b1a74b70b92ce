// Package layout computes the byte offsets of every HDU in a FITS file up
// front from an ordered schema of element types and axis extents, so HDU
// descriptors can be constructed in a single pass with no file seeks
// between them.
//
// # Planner
//
// [Plan] walks the schema once:
//
//	p, err := layout.Plan([]layout.Spec{
//	    {Bitpix: 8, Axes: []int64{200, 300}},
//	    {Bitpix: -32, Axes: []int64{100, 50, 50}},
//	})
//	p.Offsets[0] // == 0
//	p.Offsets[1] // == 2880 + roundup(200*300*1)
//
// The planner reserves exactly one block.Size header block per HDU; a
// header that needs more than header.RecordsPerBlock records is a
// construction-time error surfaced by the HDU descriptor itself, not by
// Plan, since only the descriptor knows how many records a given schema
// entry's mandatory keywords will occupy.
package layout
