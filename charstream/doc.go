// Package charstream provides a unified stream over heterogeneous character
// and byte sources.
//
// A CharStream is a tagged-union value: one Load call wires it to a
// blocking io.Reader, an immutable string, a borrowed rune or byte slice,
// or a fixed-capacity char or byte ring, and the same ReadChars/ReadBytes
// calls then work against any of them. Byte-backed sources decode UTF-8
// through a stateful decoder that carries split multi-byte sequences across
// calls.
//
// # The Read Contract
//
// A read returns the count delivered, and two sentinels:
//
//	 0   ring temporarily empty; the producer may queue more, retry
//	-1   (Exhausted) permanently drained; latched, returned forever after
//
// The has-data / empty-pending / exhausted distinction only exists for ring
// sources, whose producer signals completion with Finish. Linear and stream
// sources go straight from data to Exhausted.
//
// # Ownership
//
// A stream owns at most one physical resource at a time: the io.Closer
// behind a stream source, or the release callback handed to LoadBytes and
// LoadChars for borrowed memory. Every Load disposes the previous resource
// first, and Dispose is idempotent, so reloading a stream value never
// double-releases or leaks.
//
// Not safe for concurrent use; every value has a single logical owner.
package charstream
