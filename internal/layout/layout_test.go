package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlaine/gofits/internal/block"
	"github.com/danlaine/gofits/internal/dtype"
)

func TestPlanSingleHDU(t *testing.T) {
	p, err := Plan([]Spec{{Bitpix: 8, Axes: []int64{200, 300}}})
	require.NoError(t, err)
	require.Len(t, p.Offsets, 1)
	assert.Equal(t, int64(0), p.Offsets[0])
	assert.Equal(t, int64(block.Size), p.DataOffsets[0])
	assert.Equal(t, block.RoundUp(200*300), p.DataSizes[0])
}

func TestPlanTwoHDUs(t *testing.T) {
	schema := []Spec{
		{Bitpix: 8, Axes: []int64{200, 300}},
		{Bitpix: -32, Axes: []int64{100, 50, 50}},
	}
	p, err := Plan(schema)
	require.NoError(t, err)
	require.Len(t, p.Offsets, 2)

	assert.Equal(t, int64(0), p.Offsets[0])
	assert.Equal(t, block.Size+block.RoundUp(200*300), p.Offsets[1])

	assert.Equal(t, p.Offsets[0]+block.Size, p.DataOffsets[0])
	assert.Equal(t, p.Offsets[1]+block.Size, p.DataOffsets[1])

	assert.Equal(t, block.RoundUp(100*50*50*4), p.DataSizes[1])
}

func TestPlanOffsetsAndDataBlocksAreBlockAligned(t *testing.T) {
	schema := []Spec{
		{Bitpix: 16, Axes: []int64{7, 11, 13}},
		{Bitpix: 64, Axes: []int64{3}},
	}
	p, err := Plan(schema)
	require.NoError(t, err)
	for i := range schema {
		assert.Zero(t, p.Offsets[i]%block.Size)
		assert.Zero(t, p.DataSizes[i]%block.Size)
	}
	assert.Zero(t, p.TotalSize()%block.Size)
}

func TestPlanUnsupportedBitpix(t *testing.T) {
	_, err := Plan([]Spec{{Bitpix: 24, Axes: []int64{1}}})
	require.ErrorIs(t, err, dtype.ErrUnsupportedBitpix)
}

func TestPlanNonPositiveAxis(t *testing.T) {
	_, err := Plan([]Spec{{Bitpix: 8, Axes: []int64{0, 5}}})
	require.Error(t, err)
}

func TestPlanEmptySchema(t *testing.T) {
	p, err := Plan(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.TotalSize())
}
