// Package diskcache provides a memory-mapped frame.Backing implementation
// used when a Combiner is configured with UseDiskCache. Each materialized
// array is written to a temporary file and mapped read-only, so the stack's
// resident memory footprint no longer includes the frame data itself.
//
// # Naming
//
// Temporaries are named deterministically from a per-Registry sequence
// number, so repeated Materialize calls on the same Registry never collide.
//
// # Errors
//
// All failures (temp-file creation, write, mmap) are wrapped as
// *diskcache.IOError, carrying the offending path.
//
// # Complexity
//
// Materialize is O(rows*cols) to write the payload once; Rows thereafter is
// O(1) plus the cost of any page faults satisfied by the OS.
package diskcache
