package charstream

import (
	"github.com/glyphlab/memstream/errors"
	"github.com/glyphlab/memstream/rawbuf"
)

// The two-segment wraparound copy shows up in every ring operation. The
// index computation lives in wrapSplit only; read and write sides are thin
// generic shims over the rawbuf copy primitives.

// wrapSplit splits an n-element run starting at pos into the two contiguous
// segments it occupies in a circular region of the given capacity. second
// is 0 when the run does not wrap.
func wrapSplit(pos, n, capacity int) (first, second int) {
	first = capacity - pos
	if n < first {
		first = n
	}
	return first, n - first
}

// ringRead copies n live elements out of ring starting at head into dst.
func ringRead[T any](dst, ring []T, head, n int) {
	first, second := wrapSplit(head, n, len(ring))
	rawbuf.Copy(dst, ring[head:], first)
	rawbuf.CopyAt(dst, first, ring, second)
}

// ringWrite copies src into ring starting at pos, wrapping past the end.
func ringWrite[T any](ring []T, pos int, src []T) {
	first, second := wrapSplit(pos, len(src), len(ring))
	rawbuf.Copy(ring[pos:], src, first)
	rawbuf.CopyAt(ring, 0, src[first:], second)
}

// QueueChars appends src at the tail of a char ring. The caller owns
// backpressure: queuing more than the free capacity is a protocol
// violation and fails with an overflow error, leaving the ring untouched.
func (s *CharStream) QueueChars(src []rune) error {
	if err := s.queueCheck(SourceCharRing, len(src)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	ringWrite(s.chars[:s.capacity], (s.off+s.length)%s.capacity, src)
	s.grow(len(src))
	return nil
}

// QueueBytes appends src at the tail of a byte ring.
func (s *CharStream) QueueBytes(src []byte) error {
	if err := s.queueCheck(SourceByteRing, len(src)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	ringWrite(s.bytes[:s.capacity], (s.off+s.length)%s.capacity, src)
	s.grow(len(src))
	return nil
}

// InsertChars prepends src at the head of a char ring, so the next read
// returns it before anything previously queued. This is the pushback
// primitive for unread semantics. Capacity rules match QueueChars.
func (s *CharStream) InsertChars(src []rune) error {
	if err := s.insertCheck(SourceCharRing, len(src)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	s.off = (s.off - len(src)%s.capacity + s.capacity) % s.capacity
	ringWrite(s.chars[:s.capacity], s.off, src)
	s.grow(len(src))
	return nil
}

// InsertBytes prepends src at the head of a byte ring.
func (s *CharStream) InsertBytes(src []byte) error {
	if err := s.insertCheck(SourceByteRing, len(src)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	s.off = (s.off - len(src)%s.capacity + s.capacity) % s.capacity
	ringWrite(s.bytes[:s.capacity], s.off, src)
	s.grow(len(src))
	return nil
}

func (s *CharStream) queueCheck(want SourceType, added int) error {
	if err := s.ringCheck(want, "queue"); err != nil {
		return err
	}
	if s.finished {
		return errors.InvalidInput(errors.PhaseQueue, "queue on a finished ring")
	}
	if s.length+added > s.capacity {
		return errors.Overflow(errors.PhaseQueue, s.length, added, s.capacity)
	}
	return nil
}

func (s *CharStream) insertCheck(want SourceType, added int) error {
	if err := s.ringCheck(want, "insert"); err != nil {
		return err
	}
	if s.state == ringExhausted {
		return errors.InvalidInput(errors.PhaseQueue, "insert on an exhausted ring")
	}
	if s.length+added > s.capacity {
		return errors.Overflow(errors.PhaseQueue, s.length, added, s.capacity)
	}
	return nil
}

func (s *CharStream) ringCheck(want SourceType, op string) error {
	if s.source == SourceNone {
		return errors.NotInitialized(errors.PhaseQueue, "char stream")
	}
	if s.source != want {
		return errors.SourceMismatch(errors.PhaseQueue, op, s.source.String())
	}
	return nil
}

func (s *CharStream) grow(n int) {
	s.length += n
	s.state = ringHasData
}
