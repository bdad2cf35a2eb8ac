package arena

import (
	"fmt"
	"hash/fnv"
	"unsafe"

	"go.uber.org/zap"

	"github.com/glyphlab/memstream/errors"
)

// arenaMagic marks a live arena header. It is cleared on destroy so that
// use-after-destroy and header overwrites are both caught by the same check.
const arenaMagic uint64 = 0xfeedfacecafebeef

// capacityAlign rounds requested capacities up to a 32-byte multiple.
const capacityAlign = 32

// baseAlign is the guaranteed alignment of the block's first byte, so that
// aligned allocations up to this boundary are address-aligned, not merely
// offset-aligned.
const baseAlign = 64

// Arena is a single-block bump allocator. All allocations share the block's
// lifetime: individual regions are never freed, Reset reclaims everything at
// once, and Destroy releases the block.
//
// An Arena has no internal locking. Each value must be accessed by one
// logical owner at a time; concurrent use requires external synchronization.
type Arena struct {
	magic     uint64
	buf       []byte // capacity + guardSize bytes
	off       int    // bump cursor
	remaining int
	name      string
	id        uint32
}

// Create allocates one block sized to the requested capacity rounded up to a
// 32-byte multiple (plus the boundary guard in instrumented builds) and
// returns a live arena. The name is diagnostic only; its hash becomes the
// arena's ID.
func Create(size int, name string) (*Arena, error) {
	if size <= 0 {
		return nil, errors.InvalidInput(errors.PhaseCreate, "arena size %d must be positive", size)
	}

	capacity := alignUp(size, capacityAlign)

	h := fnv.New32a()
	h.Write([]byte(name))

	raw := make([]byte, capacity+guardSize+baseAlign-1)
	shift := int(-uintptr(unsafe.Pointer(&raw[0])) & uintptr(baseAlign-1))

	a := &Arena{
		magic:     arenaMagic,
		buf:       raw[shift : shift+capacity+guardSize],
		remaining: capacity,
		name:      name,
		id:        h.Sum32(),
	}
	a.writeGuard()

	Logger().Debug("arena created",
		zap.String("name", name),
		zap.Uint32("id", a.id),
		zap.Int("capacity", capacity))
	return a, nil
}

// Alloc bump-allocates n bytes and returns them uninitialized. It returns
// nil, with the arena untouched, when fewer than n bytes remain; callers are
// expected to treat that as an ordinary condition, not a failure. n <= 0
// returns nil.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 || !a.live() {
		return nil
	}
	if a.remaining < n {
		Logger().Warn("arena out of space",
			zap.String("name", a.name),
			zap.Int("requested", n),
			zap.Int("remaining", a.remaining))
		return nil
	}

	start := a.off
	a.off += n
	a.remaining -= n
	a.writeGuard()
	return a.buf[start:a.off:a.off]
}

// AllocAligned is Alloc with the returned region's address padded up to a
// multiple of align, which must be a power of two. The padding counts
// against the arena's remaining capacity.
func (a *Arena) AllocAligned(n, align int) []byte {
	if n <= 0 || !a.live() {
		return nil
	}
	if align <= 1 {
		return a.Alloc(n)
	}
	if align&(align-1) != 0 {
		Logger().Warn("arena alignment not a power of two",
			zap.String("name", a.name),
			zap.Int("align", align))
		return nil
	}

	pad := int(-(a.base() + uintptr(a.off)) & uintptr(align-1))
	if a.remaining < pad+n {
		Logger().Warn("arena out of space",
			zap.String("name", a.name),
			zap.Int("requested", n),
			zap.Int("padding", pad),
			zap.Int("remaining", a.remaining))
		return nil
	}

	start := a.off + pad
	a.off = start + n
	a.remaining -= pad + n
	a.writeGuard()
	return a.buf[start:a.off:a.off]
}

// Reset moves the cursor back to the start of the block, making the full
// capacity available again. Memory handed out before the reset is not
// zeroed; it becomes overwritable garbage. This is the intended fast path
// for per-frame or per-parse reuse.
func (a *Arena) Reset() {
	if !a.live() {
		return
	}
	a.off = 0
	a.remaining = a.capacity()
	a.writeGuard()
}

// Destroy validates the header magic and, in instrumented builds, the
// boundary guard, then releases the block. A validation failure returns a
// corruption error and leaves the arena untouched, since continuing to use
// a known-inconsistent region only compounds the damage. The arena must not
// be used after a successful Destroy.
func (a *Arena) Destroy() error {
	if a == nil {
		return errors.NotInitialized(errors.PhaseDestroy, "arena")
	}
	if a.magic != arenaMagic {
		return errors.Corruption(errors.PhaseDestroy, "arena header magic",
			uintptr(unsafe.Pointer(a)), arenaMagic, a.magic)
	}
	if addr, actual, ok := a.checkGuard(); !ok {
		return errors.Corruption(errors.PhaseDestroy, "arena boundary guard",
			addr, guardWord, actual)
	}

	Logger().Debug("arena destroyed",
		zap.String("name", a.name),
		zap.Uint32("id", a.id),
		zap.Int("used", a.off))

	a.magic = 0
	a.buf = nil
	a.off = 0
	a.remaining = 0
	return nil
}

// TryDestroy is Destroy that tolerates a nil, already-destroyed, or corrupt
// arena by returning false instead of an error.
func (a *Arena) TryDestroy() bool {
	if a == nil || a.magic != arenaMagic {
		return false
	}
	return a.Destroy() == nil
}

// Owns reports whether p points anywhere inside the arena's block. False on
// an invalid handle.
func (a *Arena) Owns(p unsafe.Pointer) bool {
	if !a.live() || p == nil {
		return false
	}
	addr := uintptr(p)
	base := a.base()
	return addr >= base && addr < base+uintptr(a.capacity())
}

// IsValid reports whether p points into a currently allocated region, i.e.
// below the bump cursor. False on an invalid handle.
func (a *Arena) IsValid(p unsafe.Pointer) bool {
	if !a.live() || p == nil {
		return false
	}
	addr := uintptr(p)
	base := a.base()
	return addr >= base && addr < base+uintptr(a.off)
}

// Size returns the arena's total capacity, or 0 on an invalid handle.
func (a *Arena) Size() int {
	if !a.live() {
		return 0
	}
	return a.capacity()
}

// FreeBytes returns the capacity still available, or 0 on an invalid handle.
func (a *Arena) FreeBytes() int {
	if !a.live() {
		return 0
	}
	return a.remaining
}

// Name returns the diagnostic name given at creation.
func (a *Arena) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// ID returns the FNV-32a hash of the arena's name.
func (a *Arena) ID() uint32 {
	if a == nil {
		return 0
	}
	return a.id
}

// String formats the arena for diagnostics.
func (a *Arena) String() string {
	if !a.live() {
		return "arena{invalid}"
	}
	return fmt.Sprintf("arena %q (0x%08x): %d/%d bytes used", a.name, a.id, a.off, a.capacity())
}

func (a *Arena) live() bool {
	return a != nil && a.magic == arenaMagic
}

// capacity excludes the guard region at the tail of the block.
func (a *Arena) capacity() int {
	return len(a.buf) - guardSize
}

func (a *Arena) base() uintptr {
	if len(a.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.buf[0]))
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
