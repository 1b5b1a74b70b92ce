// Package block implements the FITS 2880-byte block discipline: rounding
// byte lengths up to a block boundary, and mapping a multi-dimensional
// element index onto a byte offset inside a data block.
package block
