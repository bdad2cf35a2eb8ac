package memstream

// Allocator hands out scratch memory whose lifetime is managed as one unit.
// *arena.Arena is the canonical implementation.
type Allocator interface {
	// Alloc returns n bytes of uninitialized memory, or nil if the
	// allocator cannot satisfy the request.
	Alloc(n int) []byte
	// AllocAligned is Alloc with the start of the returned region padded
	// up to align, which must be a power of two.
	AllocAligned(n, align int) []byte
	// Reset makes the allocator's full capacity available again. Memory
	// previously handed out becomes overwritable garbage.
	Reset()
}

// Releaser releases a borrowed resource exactly once. Values that wrap
// memory owned elsewhere (see charstream.LoadBytes and LoadChars) call it
// on dispose.
type Releaser func()
