package fits

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSingleHDUHeaderRecordCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.fits")
	w, err := Create(path, Schema{{Bitpix: 8, Axes: []int64{200, 300}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)
	assert.Equal(t, 6, len(hdu.Headers())) // SIMPLE, BITPIX, NAXIS, NAXIS1, NAXIS2, EXTEND

	require.NoError(t, hdu.SetHeader("XTENSION", "TABLE "))
	assert.Equal(t, 7, len(hdu.Headers()))
}

func TestWriterTwoHDUsHeaderRecordCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.fits")
	w, err := Create(path, Schema{
		{Bitpix: 8, Axes: []int64{200, 300}},
		{Bitpix: -32, Axes: []int64{100, 50, 50}},
	})
	require.NoError(t, err)
	defer w.Close()

	hdu0, err := w.HDU(0)
	require.NoError(t, err)
	hdu1, err := w.HDU(1)
	require.NoError(t, err)

	assert.Equal(t, 6, len(hdu0.Headers()))
	assert.Equal(t, 7, len(hdu1.Headers())) // three axes adds one more NAXISk record

	require.NoError(t, hdu0.SetHeader("DATE-OBS", "1970-01-01"))
	require.NoError(t, hdu1.SetHeader("DATE-OBS", "1991-12-26"))

	assert.Equal(t, 7, len(hdu0.Headers()))
	assert.Equal(t, 8, len(hdu1.Headers()))
}

func TestWriterFileSizeAndOffsetsAreBlockAligned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligned.fits")
	w, err := Create(path, Schema{
		{Bitpix: 8, Axes: []int64{200, 300}},
		{Bitpix: -32, Axes: []int64{100, 50, 50}},
	})
	require.NoError(t, err)

	for i := 0; i < w.NumHDU(); i++ {
		hdu, err := w.HDU(i)
		require.NoError(t, err)
		assert.Zero(t, hdu.Offset()%2880, "hdu %d offset", i)
	}
	require.NoError(t, w.Close())

	fi, err := statFile(path)
	require.NoError(t, err)
	assert.Zero(t, fi%2880, "file size")
}

func TestWriterHeaderFullAt37thRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.fits")
	w, err := Create(path, Schema{{Bitpix: 8, Axes: []int64{1}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)

	// Construction already used 5 slots (SIMPLE, BITPIX, NAXIS, NAXIS1, EXTEND).
	for i := len(hdu.Headers()); i < 35; i++ {
		require.NoError(t, hdu.SetHeader("FILLER", "1"))
	}
	assert.ErrorIs(t, hdu.SetHeader("ONEMORE", "1"), ErrHeaderFull)
}

func TestWriterOutOfBoundsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oob.fits")
	w, err := Create(path, Schema{{Bitpix: -64, Axes: []int64{100, 50, 50}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)

	_, err = hdu.WriteData([]int64{101, 2}, []byte{0, 1, 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWriterMaximalIndexSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maximal.fits")
	w, err := Create(path, Schema{{Bitpix: 8, Axes: []int64{4, 3}}})
	require.NoError(t, err)
	defer w.Close()

	hdu, err := w.HDU(0)
	require.NoError(t, err)

	_, err = hdu.WriteData([]int64{3, 2}, []byte{1})
	require.NoError(t, err)
}
