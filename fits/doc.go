// Package fits reads and writes FITS (Flexible Image Transport System)
// files: an ordered sequence of Header/Data Units, each an ASCII
// keyword-record header followed by a dense, typed binary data block.
//
// Only the image-HDU subset of the FITS 3.0 standard is supported: no
// ASCII/binary tables, no checksum records, no WCS interpretation, no
// compressed tiles, and no HIERARCH long keywords. Byte-order conversion
// beyond the fixed FITS network byte order is left to the caller.
//
// A Writer is built from a fixed Schema and commits every HDU's header up
// front; a Reader discovers its HDUs by walking the file sequentially.
// Both hand out *HDU values through which data is read or written, either
// directly as bytes or, via Apply, through a BITPIX-dispatched Visitor.
package fits
