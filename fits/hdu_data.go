package fits

import (
	"fmt"

	"github.com/danlaine/gofits/internal/block"
	"github.com/danlaine/gofits/internal/ioengine"
)

// WriteData writes data at the element position index into the HDU's
// data block, using the HDU's element size to compute the byte offset.
// It fails with ErrOutOfBounds if index is outside the HDU's shape or
// the write would run past the data block, and ErrReadOnly on a
// Reader-owned HDU.
func (h *HDU) WriteData(index []int64, data []byte) (int, error) {
	if h.readOnly {
		return 0, fmt.Errorf("hdu %d: %w", h.index, ErrReadOnly)
	}
	byteOff, err := h.dataByteOffset(index, len(data))
	if err != nil {
		return 0, err
	}
	n, err := h.engine.WriteAt(data, h.dataOffset+byteOff)
	if err != nil {
		return n, fmt.Errorf("hdu %d: %w", h.index, err)
	}
	return n, nil
}

// ReadData reads len(buf) bytes from the element position index into
// buf.
func (h *HDU) ReadData(index []int64, buf []byte) (int, error) {
	byteOff, err := h.dataByteOffset(index, len(buf))
	if err != nil {
		return 0, err
	}
	n, err := h.engine.ReadAt(buf, h.dataOffset+byteOff)
	if err != nil {
		return n, fmt.Errorf("hdu %d: %w", h.index, err)
	}
	return n, nil
}

// AsyncWriteData queues data to be written at index. The returned error
// is non-nil only for an immediate precondition failure (out of bounds,
// read-only HDU); the returned channel carries the actual I/O result
// once Executor.Run is invoked.
func (h *HDU) AsyncWriteData(index []int64, data []byte) (ioengine.Token, <-chan ioengine.Result, error) {
	if h.readOnly {
		return ioengine.Token{}, nil, fmt.Errorf("hdu %d: %w", h.index, ErrReadOnly)
	}
	byteOff, err := h.dataByteOffset(index, len(data))
	if err != nil {
		return ioengine.Token{}, nil, err
	}
	token, ch := h.engine.AsyncWriteAt(data, h.dataOffset+byteOff)
	return token, ch, nil
}

// AsyncReadData queues a read of n bytes starting at index.
func (h *HDU) AsyncReadData(index []int64, n int) (ioengine.Token, <-chan ioengine.Result, error) {
	byteOff, err := h.dataByteOffset(index, n)
	if err != nil {
		return ioengine.Token{}, nil, err
	}
	token, ch := h.engine.AsyncReadAt(n, h.dataOffset+byteOff)
	return token, ch, nil
}

func (h *HDU) dataByteOffset(index []int64, length int) (int64, error) {
	byteOff, err := block.Offset(index, h.axes, h.elemSize)
	if err != nil {
		return 0, fmt.Errorf("hdu %d: %w", h.index, err)
	}
	if byteOff+int64(length) > h.dataBlockSize {
		return 0, fmt.Errorf("hdu %d: access of %d bytes at offset %d exceeds data block size %d: %w",
			h.index, length, byteOff, h.dataBlockSize, ErrOutOfBounds)
	}
	return byteOff, nil
}
