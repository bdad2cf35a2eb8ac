package charstream

import "unicode/utf8"

// utf8Decoder decodes UTF-8 incrementally. A multi-byte sequence split
// across two calls is buffered in pending and completed when the next block
// arrives; invalid bytes decode to utf8.RuneError one byte at a time, the
// same resynchronization the stdlib applies to contiguous input.
type utf8Decoder struct {
	pending [utf8.UTFMax]byte
	n       int
}

// decode appends up to len(dst) runes decoded from src into dst. It returns
// the runes produced and the bytes consumed from src; consumed bytes that
// ended mid-sequence are held in pending rather than dropped.
func (d *utf8Decoder) decode(dst []rune, src []byte) (runes, consumed int) {
	for runes < len(dst) {
		if d.n > 0 {
			if utf8.FullRune(d.pending[:d.n]) {
				r, size := utf8.DecodeRune(d.pending[:d.n])
				dst[runes] = r
				runes++
				// Resync: bytes behind an invalid prefix restart decoding.
				copy(d.pending[:], d.pending[size:d.n])
				d.n -= size
				continue
			}
			if consumed >= len(src) {
				break
			}
			d.pending[d.n] = src[consumed]
			d.n++
			consumed++
			continue
		}

		if consumed >= len(src) {
			break
		}
		r, size := utf8.DecodeRune(src[consumed:])
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(src[consumed:]) {
			// Incomplete sequence at the end of the block: carry it over.
			d.n = copy(d.pending[:], src[consumed:])
			consumed = len(src)
			break
		}
		dst[runes] = r
		runes++
		consumed += size
	}
	return runes, consumed
}

// flush reports a sequence left incomplete when the source ended. It emits
// at most one replacement rune into dst and clears the carried state.
func (d *utf8Decoder) flush(dst []rune) int {
	if d.n == 0 || len(dst) == 0 {
		return 0
	}
	d.n = 0
	dst[0] = utf8.RuneError
	return 1
}

// buffered reports whether an in-progress sequence is being carried.
func (d *utf8Decoder) buffered() bool {
	return d.n > 0
}
