package fits

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	called string
}

func (v *recordingVisitor) VisitUint8(view *View[uint8]) error {
	v.called = "uint8"
	_, err := view.WriteAt([]int64{0, 0}, []uint8{7, 8, 9})
	return err
}
func (v *recordingVisitor) VisitInt16(*View[int16]) error     { v.called = "int16"; return nil }
func (v *recordingVisitor) VisitInt32(*View[int32]) error     { v.called = "int32"; return nil }
func (v *recordingVisitor) VisitInt64(*View[int64]) error     { v.called = "int64"; return nil }
func (v *recordingVisitor) VisitFloat32(*View[float32]) error { v.called = "float32"; return nil }
func (v *recordingVisitor) VisitFloat64(*View[float64]) error { v.called = "float64"; return nil }

func TestApplyDispatchesOnBitpix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visitor.fits")
	w, err := Create(path, Schema{{Bitpix: 8, Axes: []int64{10, 10}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)

	v := &recordingVisitor{}
	require.NoError(t, hdu.Apply(v))
	assert.Equal(t, "uint8", v.called)

	view := &View[uint8]{hdu: hdu}
	got, err := view.ReadAt([]int64{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{7, 8, 9}, got)
}

func TestApplyUnsupportedBitpixFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-bitpix.fits")
	w, err := Create(path, Schema{{Bitpix: 16, Axes: []int64{2}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)
	hdu.bitpix = 12 // simulate a corrupt in-memory tag outside the six supported values

	v := &recordingVisitor{}
	err = hdu.Apply(v)
	assert.ErrorIs(t, err, ErrUnsupportedBitpix)
}
