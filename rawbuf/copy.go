package rawbuf

import "unsafe"

// Copy transfers n elements from the front of src to the front of dst.
// n <= 0 is a no-op. The destination must have room for n elements; the
// fast path does not check, and an undersized dst panics at the slice
// expression. Callers that need safety check first.
func Copy[T any](dst, src []T, n int) {
	if n <= 0 {
		return
	}
	copy(dst[:n], src[:n])
}

// CopyAt transfers n elements from the front of src into dst starting at
// dstOff. n <= 0 is a no-op.
func CopyAt[T any](dst []T, dstOff int, src []T, n int) {
	if n <= 0 {
		return
	}
	copy(dst[dstOff:dstOff+n], src[:n])
}

// CopyIncrement is Copy that additionally advances the caller's destination
// cursor past the copied elements and decrements the caller's
// remaining-capacity counter by n. It is the primitive for filling a buffer
// across several copies without recomputing offsets at each call site.
func CopyIncrement[T any](dst *[]T, remaining *int, src []T, n int) {
	if n <= 0 {
		return
	}
	copy((*dst)[:n], src[:n])
	*dst = (*dst)[n:]
	*remaining -= n
}

// CopyPtr transfers n elements of elemSize bytes between untyped buffers.
// The regions must not overlap partially; same-position overlap is fine.
// n <= 0 is a no-op.
func CopyPtr(dst, src unsafe.Pointer, n int, elemSize uintptr) {
	if n <= 0 {
		return
	}
	total := uintptr(n) * elemSize
	copy(unsafe.Slice((*byte)(dst), total), unsafe.Slice((*byte)(src), total))
}
