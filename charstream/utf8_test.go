package charstream

import (
	"testing"
	"unicode/utf8"
)

func TestUTF8Decoder_Whole(t *testing.T) {
	var d utf8Decoder
	src := []byte("aé€🌍")
	dst := make([]rune, 8)

	runes, consumed := d.decode(dst, src)
	if consumed != len(src) {
		t.Fatalf("consumed %d of %d", consumed, len(src))
	}
	if runes != 4 || string(dst[:runes]) != "aé€🌍" {
		t.Fatalf("got %d runes %q", runes, string(dst[:runes]))
	}
	if d.buffered() {
		t.Error("no state should be carried after a clean decode")
	}
}

func TestUTF8Decoder_SplitAtEveryBoundary(t *testing.T) {
	src := []byte("xé€\U0001F30D y") // 1-, 2-, 3-, 4-byte sequences
	want := string(src)

	for split := 1; split < len(src); split++ {
		var d utf8Decoder
		dst := make([]rune, 16)
		total := 0

		r1, c1 := d.decode(dst, src[:split])
		if c1 != split {
			t.Fatalf("split %d: first call consumed %d", split, c1)
		}
		total += r1
		r2, c2 := d.decode(dst[total:], src[split:])
		if c2 != len(src)-split {
			t.Fatalf("split %d: second call consumed %d", split, c2)
		}
		total += r2
		total += d.flush(dst[total:])

		if string(dst[:total]) != want {
			t.Errorf("split %d: got %q, want %q", split, string(dst[:total]), want)
		}
	}
}

func TestUTF8Decoder_ByteAtATime(t *testing.T) {
	src := []byte("héllo 🌍")
	var d utf8Decoder
	var got []rune
	dst := make([]rune, 2)

	for i := 0; i < len(src); i++ {
		r, c := d.decode(dst, src[i:i+1])
		if c != 1 {
			t.Fatalf("byte %d not consumed", i)
		}
		got = append(got, dst[:r]...)
	}
	if string(got) != string(src) {
		t.Errorf("got %q", string(got))
	}
}

func TestUTF8Decoder_InvalidBytes(t *testing.T) {
	var d utf8Decoder
	dst := make([]rune, 8)

	// Stray continuation bytes decode to one replacement rune each.
	runes, consumed := d.decode(dst, []byte{0x80, 0x81, 'a'})
	if consumed != 3 || runes != 3 {
		t.Fatalf("runes=%d consumed=%d", runes, consumed)
	}
	if dst[0] != utf8.RuneError || dst[1] != utf8.RuneError || dst[2] != 'a' {
		t.Errorf("got %q", string(dst[:runes]))
	}
}

func TestUTF8Decoder_InvalidSplitSequence(t *testing.T) {
	// Lead byte of a 2-byte sequence followed, on the next call, by a
	// plain ASCII byte: the lead is an error, the ASCII byte survives.
	var d utf8Decoder
	dst := make([]rune, 4)

	r1, _ := d.decode(dst, []byte{0xC3})
	if r1 != 0 || !d.buffered() {
		t.Fatalf("lead byte should be carried, got %d runes", r1)
	}
	r2, c2 := d.decode(dst, []byte{'A'})
	if c2 != 1 || r2 != 2 {
		t.Fatalf("runes=%d consumed=%d", r2, c2)
	}
	if dst[0] != utf8.RuneError || dst[1] != 'A' {
		t.Errorf("got %q", string(dst[:r2]))
	}
}

func TestUTF8Decoder_DstLimited(t *testing.T) {
	var d utf8Decoder
	src := []byte("abcdef")
	dst := make([]rune, 2)

	runes, consumed := d.decode(dst, src)
	if runes != 2 || consumed != 2 {
		t.Fatalf("runes=%d consumed=%d, want 2/2", runes, consumed)
	}
}

func TestUTF8Decoder_Flush(t *testing.T) {
	var d utf8Decoder
	dst := make([]rune, 2)

	if d.flush(dst) != 0 {
		t.Error("flush with no state should emit nothing")
	}

	d.decode(dst, []byte{0xE2, 0x82}) // incomplete €
	if n := d.flush(dst); n != 1 || dst[0] != utf8.RuneError {
		t.Errorf("flush emitted %d", n)
	}
	if d.buffered() {
		t.Error("flush should clear carried state")
	}
}
