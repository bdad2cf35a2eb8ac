package rawbuf

import "math/bits"

// spanStack holds pending partition spans so the sort never recurses.
type spanStack struct {
	spans [][2]int
}

// newSpanStack sizes the initial backing for the expected depth of an
// n-element sort; degenerate pivots grow it as needed.
func newSpanStack(n int) spanStack {
	return spanStack{spans: make([][2]int, 0, 2*bits.Len(uint(n)))}
}

func (s *spanStack) push(lo, hi int) {
	s.spans = append(s.spans, [2]int{lo, hi})
}

func (s *spanStack) pop() (lo, hi int) {
	top := s.spans[len(s.spans)-1]
	s.spans = s.spans[:len(s.spans)-1]
	return top[0], top[1]
}

func (s *spanStack) empty() bool {
	return len(s.spans) == 0
}
