//go:build memguard

package arena

import (
	"encoding/binary"
	"unsafe"
)

// Instrumented builds reserve one extra word past the bump cursor and keep
// a sentinel there. A write that runs past the most recent allocation
// clobbers the sentinel and is reported as corruption on the next Destroy.

const guardSize = 8

const guardWord uint64 = 0xdeadbeefdeadbeef

// writeGuard stamps the sentinel immediately after the cursor. Called after
// every cursor move so the guard always trails the live region.
func (a *Arena) writeGuard() {
	binary.LittleEndian.PutUint64(a.buf[a.off:], guardWord)
}

// checkGuard validates the sentinel. On mismatch it returns the guard's
// address and the word found there.
func (a *Arena) checkGuard() (addr uintptr, actual uint64, ok bool) {
	actual = binary.LittleEndian.Uint64(a.buf[a.off:])
	if actual == guardWord {
		return 0, 0, true
	}
	return uintptr(unsafe.Pointer(&a.buf[a.off])), actual, false
}
