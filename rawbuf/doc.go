// Package rawbuf provides copy and sort primitives over contiguous buffers.
//
// The copy family moves elements between buffers without bounds checking on
// the fast path; the destination-capacity contract belongs to the caller.
// CopyIncrement additionally advances a caller-held cursor and remaining
// counter, so a buffer can be filled across many calls without offset
// bookkeeping at each site.
//
// Quicksort is in place and iterative (explicit span stack, never the call
// stack) and comes in four ordering flavors: a Comparer value, a comparison
// function, a by-pointer comparison for large elements, and a numeric
// key-extraction function.
package rawbuf
