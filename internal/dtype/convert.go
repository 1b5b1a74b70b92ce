package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Sizeof returns the byte width of a single Numeric element.
func Sizeof[T Numeric]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case int16:
		return 2
	case int32, float32:
		return 4
	case int64, float64:
		return 8
	default:
		panic("dtype: unreachable numeric type")
	}
}

// Decode interprets raw as a slice of T encoded in FITS network byte
// order (big-endian). len(raw) must be a multiple of T's size.
func Decode[T Numeric](raw []byte) ([]T, error) {
	size := Sizeof[T]()
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("buffer of %d bytes is not a multiple of element size %d", len(raw), size)
	}
	n := len(raw) / size
	out := make([]T, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*size : (i+1)*size]
		var v T
		switch size {
		case 1:
			v = any(chunk[0]).(T)
		case 2:
			v = decode2[T](chunk)
		case 4:
			v = decode4[T](chunk)
		case 8:
			v = decode8[T](chunk)
		}
		out[i] = v
	}
	return out, nil
}

// Encode serializes values into FITS network byte order (big-endian).
func Encode[T Numeric](values []T) []byte {
	size := Sizeof[T]()
	out := make([]byte, len(values)*size)
	for i, v := range values {
		chunk := out[i*size : (i+1)*size]
		switch size {
		case 1:
			chunk[0] = any(v).(uint8)
		case 2:
			encode2(chunk, v)
		case 4:
			encode4(chunk, v)
		case 8:
			encode8(chunk, v)
		}
	}
	return out
}

func decode2[T Numeric](chunk []byte) T {
	u := binary.BigEndian.Uint16(chunk)
	return any(int16(u)).(T)
}

func encode2[T Numeric](chunk []byte, v T) {
	i := any(v).(int16)
	binary.BigEndian.PutUint16(chunk, uint16(i))
}

func decode4[T Numeric](chunk []byte) T {
	u := binary.BigEndian.Uint32(chunk)
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(int32(u)).(T)
	case float32:
		return any(math.Float32frombits(u)).(T)
	default:
		panic("dtype: unreachable 4-byte type")
	}
}

func encode4[T Numeric](chunk []byte, v T) {
	switch x := any(v).(type) {
	case int32:
		binary.BigEndian.PutUint32(chunk, uint32(x))
	case float32:
		binary.BigEndian.PutUint32(chunk, math.Float32bits(x))
	default:
		panic("dtype: unreachable 4-byte type")
	}
}

func decode8[T Numeric](chunk []byte) T {
	u := binary.BigEndian.Uint64(chunk)
	var zero T
	switch any(zero).(type) {
	case int64:
		return any(int64(u)).(T)
	case float64:
		return any(math.Float64frombits(u)).(T)
	default:
		panic("dtype: unreachable 8-byte type")
	}
}

func encode8[T Numeric](chunk []byte, v T) {
	switch x := any(v).(type) {
	case int64:
		binary.BigEndian.PutUint64(chunk, uint64(x))
	case float64:
		binary.BigEndian.PutUint64(chunk, math.Float64bits(x))
	default:
		panic("dtype: unreachable 8-byte type")
	}
}
