// Package memstream provides manual memory-management primitives and a
// unified heterogeneous character/byte stream built on top of them.
//
// # Architecture Overview
//
// The library is organized into small packages with distinct
// responsibilities:
//
//	memstream/           Root package with the Allocator and Releaser contracts
//	├── arena/           Single-block bump allocator with debug corruption guards
//	├── rawbuf/          Contiguous-buffer copy and sort primitives
//	├── charstream/      Tagged-union char/byte stream over six source kinds
//	├── errors/          Structured error types for debugging
//	└── cmd/streamcat/   Debug harness that pages data through a CharStream
//
// # Quick Start
//
// Carve per-parse scratch memory out of an arena and stream a string
// through it:
//
//	a, err := arena.Create(64<<10, "parser scratch")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.TryDestroy()
//
//	var cs charstream.CharStream
//	cs.LoadString("hello")
//	defer cs.Dispose()
//
//	buf := make([]rune, 3)
//	for {
//	    n, err := cs.ReadChars(buf)
//	    if err != nil || n == charstream.Exhausted {
//	        break
//	    }
//	    process(buf[:n])
//	}
//
// # Design Contracts
//
// Nothing in this library is safe for concurrent use; every Arena and
// CharStream value has a single logical owner at a time. Soft failures
// (arena out of space, ring temporarily empty) are sentinel returns, never
// errors; hard failures (memory corruption, ring overflow, reads from an
// uninitialized stream) are structured errors from the errors package and
// are never swallowed.
package memstream
