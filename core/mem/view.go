// File: core/mem/view.go
// Author: momentics <momentics@gmail.com>
//
// Borrowed views over a Range. View grants shared read access and hands
// out element copies; MutView grants exclusive write access and hands
// out element addresses, plus in-place reverse, swap and sort. Views
// never own storage.

package mem

import "fmt"

// View is a read-only lens over a Range. It is a value type; copying a
// View copies only the handle. Holding a View while a writer mutates
// the same extent is a caller-side discipline violation.
type View[T any] struct {
	r Range[T]
}

// ViewOf wraps a Range in a read-only view.
func ViewOf[T any](r Range[T]) View[T] {
	return View[T]{r: r}
}

// Len returns the number of elements visible through the view.
func (v View[T]) Len() int { return v.r.Len() }

// IsEmpty reports whether the view covers no elements.
func (v View[T]) IsEmpty() bool { return v.r.IsEmpty() }

// Get returns a copy of the element at index, or false when index is
// out of range. Never panics.
func (v View[T]) Get(index int) (T, bool) {
	p, ok := v.r.Get(index)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// Index returns a copy of the element at index and panics when index
// is out of range. Use Get for the non-panicking form.
func (v View[T]) Index(index int) T {
	p, ok := v.r.Get(index)
	if !ok {
		panic(fmt.Sprintf("mem: index %d out of range for view of length %d", index, v.r.Len()))
	}
	return *p
}

// Slice returns a read-only view over the sub-range [from, to).
// Malformed bounds panic.
func (v View[T]) Slice(from, to int) View[T] {
	return View[T]{r: v.r.Slice(from, to)}
}

// SplitAt splits the view into [0, index) and [index, len).
func (v View[T]) SplitAt(index int) (View[T], View[T]) {
	left, right := v.r.SplitAt(index)
	return View[T]{r: left}, View[T]{r: right}
}

// Iter returns a double-ended iterator yielding element copies.
func (v View[T]) Iter() *ViewIter[T] {
	return &ViewIter[T]{it: v.r.Iter()}
}

// MutView is an exclusive read-write lens over a Range. Two MutViews
// over disjoint sub-ranges of the same storage may be mutated
// independently; overlap is a caller-side discipline violation.
type MutView[T any] struct {
	View[T]
}

// MutViewOf wraps a Range in an exclusive view.
func MutViewOf[T any](r Range[T]) MutView[T] {
	return MutView[T]{View[T]{r: r}}
}

// AsView reborrows the mutable view as read-only.
func (m MutView[T]) AsView() View[T] { return m.View }

// GetPtr returns the address of the element at index, or false when
// index is out of range. Never panics.
func (m MutView[T]) GetPtr(index int) (*T, bool) {
	return m.r.Get(index)
}

// At returns the address of the element at index and panics when index
// is out of range. Use GetPtr for the non-panicking form.
func (m MutView[T]) At(index int) *T {
	p, ok := m.r.Get(index)
	if !ok {
		panic(fmt.Sprintf("mem: index %d out of range for view of length %d", index, m.r.Len()))
	}
	return p
}

// Set overwrites the element at index. Panics when index is out of
// range.
func (m MutView[T]) Set(index int, value T) {
	*m.At(index) = value
}

// SliceMut returns an exclusive view over the sub-range [from, to).
// The caller must not mutate through overlapping views concurrently;
// disjoint sub-views are independent. Malformed bounds panic.
func (m MutView[T]) SliceMut(from, to int) MutView[T] {
	return MutViewOf(m.r.Slice(from, to))
}

// SplitAtMut splits the view into two disjoint exclusive views
// [0, index) and [index, len), safe to mutate independently.
func (m MutView[T]) SplitAtMut(index int) (MutView[T], MutView[T]) {
	left, right := m.r.SplitAt(index)
	return MutViewOf(left), MutViewOf(right)
}

// IterMut returns a double-ended iterator yielding element addresses.
func (m MutView[T]) IterMut() *Iter[T] {
	return m.r.Iter()
}

// Swap exchanges the elements at i and j. Out-of-range indices panic;
// i == j is a no-op.
func (m MutView[T]) Swap(i, j int) {
	pi, ok := m.r.Get(i)
	if !ok {
		panic(fmt.Sprintf("mem: swap index %d out of range for view of length %d", i, m.r.Len()))
	}
	pj, ok := m.r.Get(j)
	if !ok {
		panic(fmt.Sprintf("mem: swap index %d out of range for view of length %d", j, m.r.Len()))
	}
	if pi != pj {
		*pi, *pj = *pj, *pi
	}
}

// Reverse reverses the elements in place with a two-pointer walk from
// both ends toward the center. No-op for length <= 1.
func (m MutView[T]) Reverse() {
	i, j := 0, m.r.Len()-1
	for i < j {
		m.Swap(i, j)
		i++
		j--
	}
}

// SortFunc sorts the elements in place by cmp, which must return a
// negative number when a orders before b, zero when equal, positive
// otherwise. Unstable; average O(n log n), worst case O(n^2). A cmp
// that is not a strict weak order still yields some permutation of the
// input, never a crash or lost elements.
func (m MutView[T]) SortFunc(cmp func(a, b T) int) {
	quicksort(m.r, cmp)
}
