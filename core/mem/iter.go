// File: core/mem/iter.go
// Author: momentics <momentics@gmail.com>
//
// Bounded double-ended iterator over a Range. Two pointers walk from
// both ends toward the middle; the exact remaining length falls out of
// the address difference in O(1). Zero-sized element types use a plain
// counter instead, since no pointer arithmetic may happen on them.

package mem

import "unsafe"

// Iter yields the address of each element of a Range exactly once,
// consumable from the front (Next) and the back (NextBack) in any
// interleaving. Single-pass: derive a fresh iterator from the Range to
// restart. Not safe for concurrent use.
type Iter[T any] struct {
	head     unsafe.Pointer
	tail     unsafe.Pointer // one past the last unconsumed element
	elemSize uintptr
	zstLeft  int // remaining elements when elemSize == 0
}

// Len returns the exact number of unconsumed elements.
func (it *Iter[T]) Len() int {
	if it.elemSize == 0 {
		return it.zstLeft
	}
	if uintptr(it.tail) <= uintptr(it.head) {
		return 0
	}
	return int((uintptr(it.tail) - uintptr(it.head)) / it.elemSize)
}

// Next yields the frontmost unconsumed element and advances past it,
// or reports exhaustion.
func (it *Iter[T]) Next() (*T, bool) {
	if it.elemSize == 0 {
		if it.zstLeft == 0 {
			return nil, false
		}
		it.zstLeft--
		return (*T)(it.head), true
	}
	if uintptr(it.head) >= uintptr(it.tail) {
		return nil, false
	}
	p := (*T)(it.head)
	it.head = unsafe.Add(it.head, it.elemSize)
	return p, true
}

// NextBack yields the backmost unconsumed element and retreats past it,
// or reports exhaustion. The tail retreats before the element is
// yielded, so alternating Next/NextBack consumption neither skips nor
// double-yields the middle element of an odd-length range.
func (it *Iter[T]) NextBack() (*T, bool) {
	if it.elemSize == 0 {
		if it.zstLeft == 0 {
			return nil, false
		}
		it.zstLeft--
		return (*T)(it.head), true
	}
	// Exhaustion check first keeps the tail from drifting below the
	// allocation on repeated calls.
	if uintptr(it.head) >= uintptr(it.tail) {
		return nil, false
	}
	it.tail = unsafe.Add(it.tail, -int(it.elemSize))
	return (*T)(it.tail), true
}

// ViewIter adapts Iter to yield element copies, preserving the
// read-only capability of the View it came from.
type ViewIter[T any] struct {
	it *Iter[T]
}

// Len returns the exact number of unconsumed elements.
func (vi *ViewIter[T]) Len() int { return vi.it.Len() }

// Next yields a copy of the frontmost unconsumed element.
func (vi *ViewIter[T]) Next() (T, bool) {
	p, ok := vi.it.Next()
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// NextBack yields a copy of the backmost unconsumed element.
func (vi *ViewIter[T]) NextBack() (T, bool) {
	p, ok := vi.it.NextBack()
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}
