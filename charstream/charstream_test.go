package charstream

import (
	"testing"

	"github.com/glyphlab/memstream/errors"
)

func TestZeroValue_ReadsFail(t *testing.T) {
	var s CharStream

	if _, err := s.ReadChars(make([]rune, 4)); !isKind(err, errors.KindNotInitialized) {
		t.Errorf("ReadChars on zero value: %v", err)
	}
	if _, err := s.ReadBytes(make([]byte, 4)); !isKind(err, errors.KindNotInitialized) {
		t.Errorf("ReadBytes on zero value: %v", err)
	}
	if err := s.QueueBytes([]byte{1}); !isKind(err, errors.KindNotInitialized) {
		t.Errorf("QueueBytes on zero value: %v", err)
	}
}

func TestLoadString_ReadChars(t *testing.T) {
	var s CharStream
	s.LoadString("hello")
	defer s.Dispose()

	buf := make([]rune, 3)
	n, err := s.ReadChars(buf)
	if err != nil || n != 3 || string(buf[:n]) != "hel" {
		t.Fatalf("first read: n=%d err=%v got %q", n, err, string(buf[:n]))
	}

	big := make([]rune, 10)
	n, err = s.ReadChars(big)
	if err != nil || n != 2 || string(big[:n]) != "lo" {
		t.Fatalf("second read: n=%d err=%v got %q", n, err, string(big[:n]))
	}

	// Exhaustion is latched: every further read yields it.
	for i := 0; i < 3; i++ {
		n, err = s.ReadChars(big)
		if err != nil || n != Exhausted {
			t.Fatalf("read %d after exhaustion: n=%d err=%v", i, n, err)
		}
	}
}

func TestLoadString_MultiByte(t *testing.T) {
	const text = "héllo, 世界"
	var s CharStream
	s.LoadString(text)
	defer s.Dispose()

	want := []rune(text)
	var got []rune
	buf := make([]rune, 2) // force decode across many calls
	for {
		n, err := s.ReadChars(buf)
		if err != nil {
			t.Fatal(err)
		}
		if n == Exhausted {
			break
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != string(want) {
		t.Errorf("got %q, want %q", string(got), text)
	}
}

func TestLoadString_ReadBytes(t *testing.T) {
	var s CharStream
	s.LoadString("abc")
	defer s.Dispose()

	buf := make([]byte, 2)
	n, _ := s.ReadBytes(buf)
	if n != 2 || string(buf[:n]) != "ab" {
		t.Fatalf("first byte read: %d %q", n, buf[:n])
	}
	n, _ = s.ReadBytes(buf)
	if n != 1 || buf[0] != 'c' {
		t.Fatalf("second byte read: %d %q", n, buf[:n])
	}
	if n, _ = s.ReadBytes(buf); n != Exhausted {
		t.Fatalf("read after end: %d", n)
	}
}

func TestLoadChars(t *testing.T) {
	data := []rune("runes→here")
	var s CharStream
	s.LoadChars(data, nil)
	defer s.Dispose()

	buf := make([]rune, 64)
	n, err := s.ReadChars(buf)
	if err != nil || n != len(data) {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if string(buf[:n]) != string(data) {
		t.Errorf("got %q", string(buf[:n]))
	}
	if n, _ = s.ReadChars(buf); n != Exhausted {
		t.Errorf("expected exhaustion, got %d", n)
	}

	// Char-backed sources cannot serve raw bytes.
	if _, err := s.ReadBytes(make([]byte, 4)); !isKind(err, errors.KindSourceMismatch) {
		t.Errorf("byte read from rune source: %v", err)
	}
}

func TestLoadBytes_DecodeAndRaw(t *testing.T) {
	data := []byte("día")
	var s CharStream
	s.LoadBytes(data, nil)
	defer s.Dispose()

	buf := make([]rune, 8)
	n, err := s.ReadChars(buf)
	if err != nil || n != 3 || string(buf[:n]) != "día" {
		t.Fatalf("n=%d err=%v got %q", n, err, string(buf[:n]))
	}
}

func TestLoadBytes_TruncatedSequence(t *testing.T) {
	// "é" is 0xC3 0xA9; drop the continuation byte.
	var s CharStream
	s.LoadBytes([]byte{'a', 0xC3}, nil)
	defer s.Dispose()

	buf := make([]rune, 8)
	n, err := s.ReadChars(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || buf[0] != 'a' || buf[1] != '�' {
		t.Fatalf("got %d runes %q", n, string(buf[:n]))
	}
	if n, _ = s.ReadChars(buf); n != Exhausted {
		t.Fatalf("expected exhaustion, got %d", n)
	}
}

func TestRelease_CalledExactlyOnce(t *testing.T) {
	released := 0
	var s CharStream
	s.LoadBytes([]byte("data"), func() { released++ })

	// Reload disposes the previous resource first.
	s.LoadString("other")
	if released != 1 {
		t.Fatalf("release called %d times after reload", released)
	}

	s.Dispose()
	s.Dispose()
	if released != 1 {
		t.Fatalf("release called %d times after double dispose", released)
	}
}

func TestDispose_ResetsToZero(t *testing.T) {
	var s CharStream
	s.LoadString("x")
	s.Dispose()

	if _, err := s.ReadChars(make([]rune, 1)); !isKind(err, errors.KindNotInitialized) {
		t.Errorf("read after dispose: %v", err)
	}
	st := s.Stats()
	if st.Source != SourceNone || st.Live != 0 {
		t.Errorf("stats after dispose: %+v", st)
	}
}

func TestStats_Linear(t *testing.T) {
	var s CharStream
	s.LoadString("hello")
	defer s.Dispose()

	if st := s.Stats(); st.Source != SourceString || st.Live != 5 {
		t.Fatalf("fresh stats: %+v", st)
	}
	s.ReadChars(make([]rune, 2))
	st := s.Stats()
	if st.Live != 3 || st.TotalRead != 2 {
		t.Errorf("after partial read: %+v", st)
	}
}

func TestSourceType_String(t *testing.T) {
	names := map[SourceType]string{
		SourceNone:     "none",
		SourceStream:   "stream",
		SourceString:   "string",
		SourceChars:    "chars",
		SourceBytes:    "bytes",
		SourceCharRing: "char_ring",
		SourceByteRing: "byte_ring",
	}
	for st, want := range names {
		if got := st.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", st, got, want)
		}
	}
}

func isKind(err error, kind errors.Kind) bool {
	e, ok := err.(*errors.Error)
	return ok && e.Kind == kind
}
