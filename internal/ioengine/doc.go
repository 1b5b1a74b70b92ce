// Package ioengine owns the open file handle for a FITS file and exposes
// positional synchronous and asynchronous I/O. Positional reads and
// writes address absolute byte offsets and never share a cursor.
//
// Asynchronous operations are queued by AsyncReadAt/AsyncWriteAt and only
// dispatched when the caller invokes Executor.Run, mirroring a
// single-threaded cooperative scheduler: Run drains the queue onto a
// bounded pool of goroutines and blocks until every queued job has
// completed or the run context is done. Completions for two jobs whose
// byte ranges overlap are delivered in issue order; disjoint ranges may
// complete in any order.
package ioengine
