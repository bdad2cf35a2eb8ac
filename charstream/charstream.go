package charstream

import (
	"io"
	"unsafe"

	"go.uber.org/zap"
)

// SourceType tags the backing store a CharStream reads from.
type SourceType uint8

const (
	SourceNone SourceType = iota
	SourceStream
	SourceString
	SourceChars
	SourceBytes
	SourceCharRing
	SourceByteRing
)

func (s SourceType) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceStream:
		return "stream"
	case SourceString:
		return "string"
	case SourceChars:
		return "chars"
	case SourceBytes:
		return "bytes"
	case SourceCharRing:
		return "char_ring"
	case SourceByteRing:
		return "byte_ring"
	default:
		return "unknown"
	}
}

// Ownership records which physical resource Dispose must release. A stream
// never owns its logical data, but it owns at most one resource at a time;
// load and dispose transfer that ownership all-or-nothing.
type Ownership uint8

const (
	OwnNone    Ownership = iota
	OwnStream            // close the reader if it implements io.Closer
	OwnRelease           // invoke the release callback exactly once
)

// ringState keeps the ring's lifecycle explicit instead of overloading the
// sign of the live count. The three cases are distinct on purpose: an empty
// ring whose producer may still queue more data is retryable, an exhausted
// one never yields again.
type ringState uint8

const (
	ringHasData ringState = iota
	ringEmptyPending
	ringExhausted
)

// Exhausted is returned by reads once a source is permanently drained, and
// on every read after that.
const Exhausted = -1

// defaultScratchSize backs stream sources when the caller supplies no
// scratch buffer.
const defaultScratchSize = 4096

// CharStream is a tagged-union stream value that reads characters or bytes
// from one of six backing-store kinds. The zero value is uninitialized and
// fails every read; a load makes it live, Dispose returns it to zero.
//
// Not safe for concurrent use; one logical owner at a time.
type CharStream struct {
	source    SourceType
	ownership Ownership

	r          io.Reader
	scratch    []byte
	scratchPos int // first undecoded byte in scratch
	scratchLen int // bytes of the current block held in scratch
	eof        bool
	release    func()

	chars []rune // char sources: linear data or ring backing
	bytes []byte // byte/string sources: linear data or ring backing

	off      int // linear: read offset; ring: read head
	length   int // linear: total element count; ring: live element count
	capacity int // ring sources only

	state     ringState
	finished  bool // linear/stream: Exhausted latched; ring: producer done
	totalRead int64

	dec utf8Decoder
}

// LoadStream wires the stream to a blocking reader. Reads pull bounded
// blocks into scratch (an internal buffer is allocated when scratch is
// nil) and decode from there. Dispose closes r if it implements io.Closer.
func (s *CharStream) LoadStream(r io.Reader, scratch []byte) {
	s.Dispose()
	if len(scratch) == 0 {
		scratch = make([]byte, defaultScratchSize)
	}
	s.source = SourceStream
	s.ownership = OwnStream
	s.r = r
	s.scratch = scratch
}

// LoadString wraps an immutable string. The string's bytes are viewed in
// place, never copied; ReadChars decodes them as UTF-8 and ReadBytes hands
// them out raw.
func (s *CharStream) LoadString(str string) {
	s.Dispose()
	s.source = SourceString
	s.ownership = OwnNone
	if len(str) > 0 {
		s.bytes = unsafe.Slice(unsafe.StringData(str), len(str))
	}
	s.length = len(str)
}

// LoadChars wraps a borrowed rune slice. release, if non-nil, is invoked
// exactly once on dispose, preserving the one-owner-releases-once contract
// for pinned or pooled backing memory.
func (s *CharStream) LoadChars(cs []rune, release func()) {
	s.Dispose()
	s.source = SourceChars
	s.ownership = ownershipFor(release)
	s.chars = cs
	s.release = release
	s.length = len(cs)
}

// LoadBytes wraps a borrowed byte slice; ReadChars decodes UTF-8, ReadBytes
// hands bytes out raw. release semantics match LoadChars.
func (s *CharStream) LoadBytes(bs []byte, release func()) {
	s.Dispose()
	s.source = SourceBytes
	s.ownership = ownershipFor(release)
	s.bytes = bs
	s.release = release
	s.length = len(bs)
}

// LoadCharRing turns buf into an empty fixed-capacity ring of runes fed by
// QueueChars/InsertChars and drained by ReadChars.
func (s *CharStream) LoadCharRing(buf []rune) {
	s.Dispose()
	s.source = SourceCharRing
	s.ownership = OwnNone
	s.chars = buf
	s.capacity = len(buf)
	s.state = ringEmptyPending
}

// LoadByteRing turns buf into an empty fixed-capacity ring of bytes fed by
// QueueBytes/InsertBytes; ReadChars decodes the drained bytes as UTF-8.
func (s *CharStream) LoadByteRing(buf []byte) {
	s.Dispose()
	s.source = SourceByteRing
	s.ownership = OwnNone
	s.bytes = buf
	s.capacity = len(buf)
	s.state = ringEmptyPending
}

// Finish signals that the producer will queue no more data into a ring
// source. Once the ring drains (or on the next read, if it is already
// empty), reads latch Exhausted.
func (s *CharStream) Finish() {
	if s.source != SourceCharRing && s.source != SourceByteRing {
		return
	}
	s.finished = true
}

// Dispose releases the owned resource, if any, and resets the value to the
// uninitialized state. Idempotent; safe on the zero value.
func (s *CharStream) Dispose() {
	switch s.ownership {
	case OwnStream:
		if c, ok := s.r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				Logger().Warn("closing stream source",
					zap.String("source", s.source.String()),
					zap.Error(err))
			}
		}
	case OwnRelease:
		if s.release != nil {
			s.release()
		}
	}
	*s = CharStream{}
}

// Stats is a point-in-time snapshot for diagnostics.
type Stats struct {
	Source    SourceType
	Live      int // elements readable right now
	Capacity  int // ring sources; 0 otherwise
	Finished  bool
	TotalRead int64
}

// Stats reports the stream's current shape. Read-only.
func (s *CharStream) Stats() Stats {
	st := Stats{
		Source:    s.source,
		Capacity:  s.capacity,
		Finished:  s.finished,
		TotalRead: s.totalRead,
	}
	switch s.source {
	case SourceCharRing, SourceByteRing:
		st.Live = s.length
		st.Finished = s.state == ringExhausted || s.finished
	case SourceString, SourceChars, SourceBytes:
		st.Live = s.length - s.off
	}
	return st
}

func ownershipFor(release func()) Ownership {
	if release != nil {
		return OwnRelease
	}
	return OwnNone
}
