package fits

import (
	"errors"

	"github.com/danlaine/gofits/internal/block"
	"github.com/danlaine/gofits/internal/dtype"
	"github.com/danlaine/gofits/internal/header"
	"github.com/danlaine/gofits/internal/ioengine"
)

// Sentinel errors form the package's stable error taxonomy. Errors
// returned from lower packages are aliased here rather than re-wrapped so
// that errors.Is works the same way whether the caller compares against
// the fits sentinel or the internal one.
var (
	// ErrNotFound is returned when a required header keyword is absent.
	ErrNotFound = errors.New("header keyword not found")
	// ErrOutOfBounds is returned when a data index exceeds an HDU's
	// declared shape, or would overflow its data block.
	ErrOutOfBounds = block.ErrOutOfBounds
	// ErrHeaderFull is returned when a header block has no remaining
	// record slot for a new record.
	ErrHeaderFull = header.ErrHeaderFull
	// ErrParseError is returned when a header value cannot be converted
	// to the type requested by ValueAs.
	ErrParseError = errors.New("could not parse header value")
	// ErrFormatError is returned when the reader driver encounters a
	// structural violation: a missing END record, a missing mandatory
	// keyword, or a non-convertible mandatory numeric value.
	ErrFormatError = errors.New("malformed FITS file")
	// ErrUnsupportedBitpix is returned when a visitor is applied to an
	// HDU whose BITPIX falls outside the six supported values.
	ErrUnsupportedBitpix = dtype.ErrUnsupportedBitpix
	// ErrCancelled is returned to a pending async operation's result
	// when Stop is called before it completes.
	ErrCancelled = ioengine.ErrCancelled
	// ErrClosed is returned by any operation attempted on a closed
	// Reader or Writer.
	ErrClosed = ioengine.ErrClosed
	// ErrReadOnly is returned by header or data mutation attempted on a
	// Reader-owned HDU.
	ErrReadOnly = errors.New("HDU is read-only")
)
