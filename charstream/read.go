package charstream

import (
	"io"

	"github.com/glyphlab/memstream/errors"

	"github.com/glyphlab/memstream/rawbuf"
)

// ReadChars fills dst with up to len(dst) characters and returns the count.
// For ring sources a return of 0 means temporarily empty: the producer may
// still queue more, retry later. Exhausted (-1) means the source is
// permanently drained; once returned it is latched and every later read
// yields it again without touching decode state. Byte-backed sources decode
// their bytes as UTF-8, carrying split sequences across calls.
func (s *CharStream) ReadChars(dst []rune) (int, error) {
	switch s.source {
	case SourceStream:
		return s.readCharsStream(dst)
	case SourceString, SourceBytes:
		return s.readCharsLinearBytes(dst)
	case SourceChars:
		return s.readCharsLinear(dst)
	case SourceCharRing:
		return s.readCharRing(dst)
	case SourceByteRing:
		return s.readCharsByteRing(dst)
	default:
		return 0, errors.NotInitialized(errors.PhaseRead, "char stream")
	}
}

// ReadBytes is ReadChars for raw bytes: no decoding, same count/0/Exhausted
// contract. Char-backed sources (rune slices, char rings) cannot serve
// bytes and fail with a source mismatch.
func (s *CharStream) ReadBytes(dst []byte) (int, error) {
	switch s.source {
	case SourceStream:
		return s.readBytesStream(dst)
	case SourceString, SourceBytes:
		return s.readBytesLinear(dst)
	case SourceByteRing:
		return s.readByteRing(dst)
	case SourceChars, SourceCharRing:
		return 0, errors.SourceMismatch(errors.PhaseRead, "byte read", s.source.String())
	default:
		return 0, errors.NotInitialized(errors.PhaseRead, "char stream")
	}
}

// linear char-backed source: straight copy, no decoding.
func (s *CharStream) readCharsLinear(dst []rune) (int, error) {
	if s.finished {
		return Exhausted, nil
	}
	remaining := s.length - s.off
	if remaining == 0 {
		s.finished = true
		return Exhausted, nil
	}
	n := min(remaining, len(dst))
	rawbuf.Copy(dst, s.chars[s.off:], n)
	s.off += n
	s.totalRead += int64(n)
	return n, nil
}

// linear byte-backed source (string or byte slice): stateful UTF-8 decode.
func (s *CharStream) readCharsLinearBytes(dst []rune) (int, error) {
	if s.finished {
		return Exhausted, nil
	}
	if s.length-s.off == 0 && !s.dec.buffered() {
		s.finished = true
		return Exhausted, nil
	}
	runes, consumed := s.dec.decode(dst, s.bytes[s.off:s.length])
	s.off += consumed
	if s.off == s.length && s.dec.buffered() && runes < len(dst) {
		// Data ends mid-sequence; there is nothing left to complete it.
		runes += s.dec.flush(dst[runes:])
	}
	s.totalRead += int64(runes)
	return runes, nil
}

func (s *CharStream) readBytesLinear(dst []byte) (int, error) {
	if s.finished {
		return Exhausted, nil
	}
	remaining := s.length - s.off
	if remaining == 0 {
		s.finished = true
		return Exhausted, nil
	}
	n := min(remaining, len(dst))
	rawbuf.Copy(dst, s.bytes[s.off:], n)
	s.off += n
	s.totalRead += int64(n)
	return n, nil
}

// stream source, char mode: one bounded block per call, decoded from the
// scratch buffer. Bytes the decoder could not fit into dst stay in scratch
// and are drained first on the next call.
func (s *CharStream) readCharsStream(dst []rune) (int, error) {
	if s.finished {
		return Exhausted, nil
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.scratchPos < s.scratchLen {
		runes, consumed := s.dec.decode(dst, s.scratch[s.scratchPos:s.scratchLen])
		s.scratchPos += consumed
		if runes > 0 {
			s.totalRead += int64(runes)
			return runes, nil
		}
	}

	if !s.eof {
		n, err := s.r.Read(s.scratch)
		if err != nil && err != io.EOF {
			return 0, errors.IO(errors.PhaseRead, "read stream block", err)
		}
		if err == io.EOF {
			s.eof = true
		}
		if n > 0 {
			runes, consumed := s.dec.decode(dst, s.scratch[:n])
			s.scratchPos, s.scratchLen = consumed, n
			if runes > 0 || !s.eof {
				s.totalRead += int64(runes)
				return runes, nil
			}
		} else if !s.eof {
			return 0, nil
		}
	}

	if runes := s.dec.flush(dst); runes > 0 {
		s.totalRead += int64(runes)
		return runes, nil
	}
	s.finished = true
	return Exhausted, nil
}

// stream source, byte mode: blocks pass through the scratch buffer
// unchanged.
func (s *CharStream) readBytesStream(dst []byte) (int, error) {
	if s.finished {
		return Exhausted, nil
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.scratchPos < s.scratchLen {
		n := min(len(dst), s.scratchLen-s.scratchPos)
		rawbuf.Copy(dst, s.scratch[s.scratchPos:], n)
		s.scratchPos += n
		s.totalRead += int64(n)
		return n, nil
	}
	if s.eof {
		s.finished = true
		return Exhausted, nil
	}

	block := min(len(dst), len(s.scratch))
	n, err := s.r.Read(s.scratch[:block])
	if err != nil && err != io.EOF {
		return 0, errors.IO(errors.PhaseRead, "read stream block", err)
	}
	if err == io.EOF {
		s.eof = true
		if n == 0 {
			s.finished = true
			return Exhausted, nil
		}
	}
	rawbuf.Copy(dst, s.scratch, n)
	s.totalRead += int64(n)
	return n, nil
}

func (s *CharStream) readCharRing(dst []rune) (int, error) {
	if s.state == ringExhausted {
		return Exhausted, nil
	}
	if s.length == 0 {
		if s.finished {
			s.state = ringExhausted
			return Exhausted, nil
		}
		return 0, nil
	}
	n := min(s.length, len(dst))
	if n == 0 {
		return 0, nil
	}
	ringRead(dst, s.chars[:s.capacity], s.off, n)
	s.advanceRing(n)
	s.totalRead += int64(n)
	return n, nil
}

func (s *CharStream) readByteRing(dst []byte) (int, error) {
	if s.state == ringExhausted {
		return Exhausted, nil
	}
	if s.length == 0 {
		if s.finished {
			s.state = ringExhausted
			return Exhausted, nil
		}
		return 0, nil
	}
	n := min(s.length, len(dst))
	if n == 0 {
		return 0, nil
	}
	ringRead(dst, s.bytes[:s.capacity], s.off, n)
	s.advanceRing(n)
	s.totalRead += int64(n)
	return n, nil
}

// byte ring, char mode: decode straight out of the ring's two segments,
// never more bytes than dst has rune slots (a byte yields at most one rune).
func (s *CharStream) readCharsByteRing(dst []rune) (int, error) {
	if s.state == ringExhausted {
		return Exhausted, nil
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if s.length == 0 {
		if s.finished {
			if runes := s.dec.flush(dst); runes > 0 {
				s.totalRead += int64(runes)
				return runes, nil
			}
			s.state = ringExhausted
			return Exhausted, nil
		}
		return 0, nil
	}

	n := min(s.length, len(dst))
	first, second := wrapSplit(s.off, n, s.capacity)
	runes, consumed := s.dec.decode(dst, s.bytes[s.off:s.off+first])
	if consumed == first && second > 0 && runes < len(dst) {
		r2, c2 := s.dec.decode(dst[runes:], s.bytes[:second])
		runes += r2
		consumed += c2
	}
	s.advanceRing(consumed)
	s.totalRead += int64(runes)
	return runes, nil
}

func (s *CharStream) advanceRing(n int) {
	s.off = (s.off + n) % s.capacity
	s.length -= n
	if s.length == 0 {
		s.state = ringEmptyPending
	}
}
