// Package dtype maps FITS BITPIX values onto the Go numeric types the
// core's typed visitor and typed read/write accessors present, and
// provides big-endian (FITS network byte order) conversion between a raw
// element buffer and a typed slice.
package dtype
