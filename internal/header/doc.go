// Package header implements the FITS 80-byte keyword record codec: fixed
// record encoding and decoding, the END sentinel, case-insensitive
// keyword lookup, and the append-over-END semantics used when a new
// record is added to an already-written header block.
package header
