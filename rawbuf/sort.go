package rawbuf

// Comparer orders elements by value. Compare returns <0, 0, or >0 when a
// sorts before, equal to, or after b.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc orders elements by value.
type CompareFunc[T any] func(a, b T) int

// ComparePtrFunc orders elements through pointers, so large elements are
// never copied just to be compared.
type ComparePtrFunc[T any] func(a, b *T) int

// KeyFunc derives one numeric sort key per element. The partition derives
// the pivot's key once instead of re-extracting it on every comparison.
type KeyFunc[T any] func(*T) int64

// Quicksort sorts buf[:n] in place using a Comparer.
func Quicksort[T any](buf []T, n int, c Comparer[T]) {
	QuicksortPtr(buf, n, func(a, b *T) int { return c.Compare(*a, *b) })
}

// QuicksortFunc sorts buf[:n] in place using a comparison function.
func QuicksortFunc[T any](buf []T, n int, cmp CompareFunc[T]) {
	QuicksortPtr(buf, n, func(a, b *T) int { return cmp(*a, *b) })
}

// QuicksortPtr sorts buf[:n] in place using a by-pointer comparison.
//
// The sort is iterative: spans wait on an explicit stack rather than the
// call stack, which bounds stack depth on large inputs. The pivot is the
// middle index of the span, not median-of-three; pre-sorted and adversarial
// inputs can degrade, and that trade-off is kept as is because changing the
// pivot changes the output order of equal keys. Partitioning is Hoare-style
// with two converging cursors; elements equal to the pivot may land on
// either side.
func QuicksortPtr[T any](buf []T, n int, cmp ComparePtrFunc[T]) {
	if n < 2 {
		return
	}
	stack := newSpanStack(n)
	stack.push(0, n-1)
	for !stack.empty() {
		lo, hi := stack.pop()
		if lo >= hi {
			continue
		}
		p := partitionPtr(buf, lo, hi, cmp)
		stack.push(lo, p)
		stack.push(p+1, hi)
	}
}

// QuicksortKeys sorts buf[:n] in place by extracted numeric key.
func QuicksortKeys[T any](buf []T, n int, key KeyFunc[T]) {
	if n < 2 {
		return
	}
	stack := newSpanStack(n)
	stack.push(0, n-1)
	for !stack.empty() {
		lo, hi := stack.pop()
		if lo >= hi {
			continue
		}
		p := partitionKeys(buf, lo, hi, key)
		stack.push(lo, p)
		stack.push(p+1, hi)
	}
}

func partitionPtr[T any](buf []T, lo, hi int, cmp ComparePtrFunc[T]) int {
	pivot := buf[lo+(hi-lo)/2]
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if cmp(&buf[i], &pivot) >= 0 {
				break
			}
		}
		for {
			j--
			if cmp(&buf[j], &pivot) <= 0 {
				break
			}
		}
		if i >= j {
			return j
		}
		tmp := buf[i]
		buf[i] = buf[j]
		buf[j] = tmp
	}
}

func partitionKeys[T any](buf []T, lo, hi int, key KeyFunc[T]) int {
	// Pivot key extracted once per partition.
	pivotKey := key(&buf[lo+(hi-lo)/2])
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if key(&buf[i]) >= pivotKey {
				break
			}
		}
		for {
			j--
			if key(&buf[j]) <= pivotKey {
				break
			}
		}
		if i >= j {
			return j
		}
		tmp := buf[i]
		buf[i] = buf[j]
		buf[j] = tmp
	}
}
