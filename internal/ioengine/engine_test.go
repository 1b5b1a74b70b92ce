package ioengine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	e, err := Create(path)
	require.NoError(t, err)
	defer e.Close()

	want := []byte("hello, fits")
	n, err := e.WriteAt(want, 100)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	got := make([]byte, len(want))
	n, err = e.ReadAt(got, 100)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)
	assert.Equal(t, want, got)
}

func TestAsyncWriteThenReadAfterRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	e, err := Create(path)
	require.NoError(t, err)
	defer e.Close()

	data := []byte{1, 2, 3, 4, 5}
	_, writeDone := e.AsyncWriteAt(data, 0)
	_, readDone := e.AsyncReadAt(len(data), 0)

	require.NoError(t, e.Executor().Run(context.Background()))

	wres := <-writeDone
	require.NoError(t, wres.Err)
	assert.Equal(t, len(data), wres.N)

	rres := <-readDone
	require.NoError(t, rres.Err)
	assert.Equal(t, data, rres.Buf)
}

func TestOverlappingRangesCompleteInIssueOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	e, err := Create(path)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.WriteAt(make([]byte, 16), 0)
	require.NoError(t, err)

	dones := make([]<-chan Result, 5)
	for i := 0; i < 5; i++ {
		_, done := e.AsyncWriteAt([]byte{byte(i)}, 0) // all target the same byte
		dones[i] = done
	}
	require.NoError(t, e.Executor().Run(context.Background()))

	// Overlapping writes complete in issue order, so reading the done
	// channels in issue order never blocks on a later completion.
	for i, done := range dones {
		res := <-done
		require.NoError(t, res.Err)
		assert.Equal(t, 1, res.N, "job %d", i)
	}

	got := make([]byte, 1)
	_, err = e.ReadAt(got, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(4), got[0], "last issued write should win")
}

func TestCancelledRunContextCancelsPendingJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	e, err := Create(path)
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	_, done := e.AsyncWriteAt([]byte{1}, 0)
	cancel() // cancel before Run so the job observes ctx.Done immediately

	_ = e.Executor().Run(ctx)
	res := <-done
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrCancelled))
}

func TestReadAtAfterCloseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	e, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = e.ReadAt(make([]byte, 4), 0)
	require.ErrorIs(t, err, ErrClosed)
}
