package dtype

import (
	"errors"
	"fmt"
)

// ErrUnsupportedBitpix is returned when a BITPIX value falls outside the
// closed set the core supports.
var ErrUnsupportedBitpix = errors.New("unsupported bitpix")

// Numeric constrains the Go types the core's typed accessors present.
// BITPIX 8 maps to uint8 (FITS treats it as unsigned); the signed integer
// widths and the two IEEE-754 floats round out the closed set.
type Numeric interface {
	uint8 | int16 | int32 | int64 | float32 | float64
}

// ElemSize returns the number of bytes one element of the given BITPIX
// occupies, i.e. |bitpix|/8.
func ElemSize(bitpix int) (int, error) {
	switch bitpix {
	case 8, 16, 32, 64, -32, -64:
		if bitpix < 0 {
			bitpix = -bitpix
		}
		return bitpix / 8, nil
	default:
		return 0, fmt.Errorf("bitpix=%d: %w", bitpix, ErrUnsupportedBitpix)
	}
}

// Valid reports whether bitpix is one of the six values the core
// supports.
func Valid(bitpix int) bool {
	_, err := ElemSize(bitpix)
	return err == nil
}

// Name returns the human-readable Go-type name a BITPIX value maps to,
// for diagnostic messages.
func Name(bitpix int) string {
	switch bitpix {
	case 8:
		return "uint8"
	case 16:
		return "int16"
	case 32:
		return "int32"
	case 64:
		return "int64"
	case -32:
		return "float32"
	case -64:
		return "float64"
	default:
		return fmt.Sprintf("bitpix(%d)", bitpix)
	}
}
