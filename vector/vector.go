// File: vector/vector.go
// Author: momentics <momentics@gmail.com>
//
// The owning container. Elements at offsets [0, Len) are initialized;
// [Len, Cap) are allocated but uninitialized and never read. A vector
// with capacity 0 holds no allocation, and a vector of a zero-sized
// element type never allocates at all.

package vector

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"

	"github.com/momentics/hioload-vec/alloc"
	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/core/mem"
)

// Vector is a heap-backed dynamic array of T. The zero value is not
// usable; construct through New, NewIn, WithCapacity or WithCapacityIn.
type Vector[T any] struct {
	buf      mem.Range[T] // head + live length
	capacity int
	alloc    api.Allocator
}

// New creates an empty vector on the default allocator. No allocation
// is performed until the first push or reserve.
func New[T any]() *Vector[T] {
	return NewIn[T](alloc.Default())
}

// NewIn creates an empty vector on a caller-supplied allocator.
func NewIn[T any](a api.Allocator) *Vector[T] {
	return &Vector[T]{buf: mem.Dangling[T](), alloc: a}
}

// WithCapacity creates a vector with storage for n elements up front on
// the default allocator. Layout overflow and allocator rejection are
// returned as errors. A zero-sized element type always succeeds without
// allocating.
func WithCapacity[T any](n int) (*Vector[T], error) {
	return WithCapacityIn[T](n, alloc.Default())
}

// WithCapacityIn is WithCapacity on a caller-supplied allocator.
func WithCapacityIn[T any](n int, a api.Allocator) (*Vector[T], error) {
	layout, err := mem.LayoutFor[T](n)
	if err != nil {
		return nil, err
	}
	v := &Vector[T]{buf: mem.Dangling[T](), capacity: n, alloc: a}
	if layout.Size > 0 {
		ptr, err := a.Allocate(layout)
		if err != nil {
			return nil, err
		}
		v.buf = mem.MakeRange[T](ptr, 0)
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.buf.Len() }

// Cap returns the allocated element capacity.
func (v *Vector[T]) Cap() int { return v.capacity }

// IsEmpty reports whether the vector holds no live elements.
func (v *Vector[T]) IsEmpty() bool { return v.buf.IsEmpty() }

// Reserve ensures capacity for at least additional more elements
// beyond the current length. When growth is needed, the new capacity
// is the next power of two of capacity+additional and the existing
// allocation is grown in place (the allocator may relocate). On
// failure the vector is unchanged.
func (v *Vector[T]) Reserve(additional int) error {
	if additional < 0 {
		panic(fmt.Sprintf("vector: negative reserve %d", additional))
	}
	// Guard the sums below: a wrapped negative would slip past the
	// no-growth check and round to a zero capacity, reporting success
	// for a reservation that was never made.
	if additional > math.MaxInt-v.capacity {
		return api.NewLayoutError("capacity overflows").
			WithContext("capacity", v.capacity).
			WithContext("additional", additional)
	}
	if v.buf.Len()+additional <= v.capacity {
		return nil
	}
	newCap, ok := nextPowerOfTwo(v.capacity + additional)
	if !ok {
		return api.NewLayoutError("capacity overflows").
			WithContext("capacity", v.capacity).
			WithContext("additional", additional)
	}
	if newCap == 0 {
		return nil
	}
	newLayout, err := mem.LayoutFor[T](newCap)
	if err != nil {
		return err
	}
	if newLayout.Size == 0 {
		// Zero-sized elements: capacity is bookkeeping only.
		v.capacity = newCap
		return nil
	}
	oldLayout, err := mem.LayoutFor[T](v.capacity)
	if err != nil {
		return err
	}
	var ptr = v.buf.Head()
	if oldLayout.Size == 0 {
		ptr, err = v.alloc.Allocate(newLayout)
	} else {
		ptr, err = v.alloc.Grow(ptr, oldLayout, newLayout)
	}
	if err != nil {
		return err
	}
	v.buf = mem.MakeRange[T](ptr, v.buf.Len())
	v.capacity = newCap
	return nil
}

// ShrinkToFit reallocates storage down to exactly the live length.
// No-op when length equals capacity. On failure the vector is
// unchanged.
func (v *Vector[T]) ShrinkToFit() error {
	length := v.buf.Len()
	if length >= v.capacity {
		return nil
	}
	oldLayout, err := mem.LayoutFor[T](v.capacity)
	if err != nil {
		return err
	}
	newLayout, err := mem.LayoutFor[T](length)
	if err != nil {
		return err
	}
	if oldLayout.Size == 0 {
		// Nothing allocated (zero capacity or zero-sized elements).
		v.capacity = length
		return nil
	}
	if newLayout.Size == 0 {
		// length == 0: release the allocation outright; Deallocate must
		// not see a zero-size layout.
		v.alloc.Deallocate(v.buf.Head(), oldLayout)
		v.buf = mem.Dangling[T]()
		v.capacity = 0
		return nil
	}
	ptr, err := v.alloc.Shrink(v.buf.Head(), oldLayout, newLayout)
	if err != nil {
		return err
	}
	v.buf = mem.MakeRange[T](ptr, length)
	v.capacity = length
	return nil
}

// Push appends value, growing if needed. On a failed reservation the
// error is returned and the caller's value is untouched (Go passes it
// by copy), so nothing is lost.
func (v *Vector[T]) Push(value T) error {
	if err := v.Reserve(1); err != nil {
		return err
	}
	n := v.buf.Len()
	// The slot past the last element is allocated but uninitialized;
	// write without reading it first.
	*v.slot(n) = value
	v.buf = mem.MakeRange[T](v.buf.Head(), n+1)
	return nil
}

// Pop removes and returns the last element, or reports absence on an
// empty vector. The vacated slot is zeroed and never read again until
// a future push overwrites it.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	n := v.buf.Len()
	if n == 0 {
		return zero, false
	}
	p := v.slot(n - 1)
	value := *p
	*p = zero
	v.buf = mem.MakeRange[T](v.buf.Head(), n-1)
	return value, true
}

// Get returns a copy of the element at index, or false when index is
// out of range. Never panics.
func (v *Vector[T]) Get(index int) (T, bool) {
	return v.View().Get(index)
}

// GetMut returns the address of the element at index, or false when
// index is out of range. Never panics.
func (v *Vector[T]) GetMut(index int) (*T, bool) {
	return v.ViewMut().GetPtr(index)
}

// Index returns a copy of the element at index, panicking when index
// is out of range. The panicking and absence-reporting forms are both
// offered; pick per call site.
func (v *Vector[T]) Index(index int) T {
	return v.View().Index(index)
}

// At returns the address of the element at index, panicking when index
// is out of range.
func (v *Vector[T]) At(index int) *T {
	return v.ViewMut().At(index)
}

// View returns a read-only view over all live elements.
func (v *Vector[T]) View() mem.View[T] {
	return mem.ViewOf(v.buf)
}

// ViewMut returns an exclusive view over all live elements. Do not
// push, pop, reserve or shrink while the view is in use.
func (v *Vector[T]) ViewMut() mem.MutView[T] {
	return mem.MutViewOf(v.buf)
}

// Slice returns a read-only view over [from, to). Malformed bounds
// panic.
func (v *Vector[T]) Slice(from, to int) mem.View[T] {
	return v.View().Slice(from, to)
}

// SliceMut returns an exclusive view over [from, to). Disjoint
// sub-views may be mutated independently. Malformed bounds panic.
func (v *Vector[T]) SliceMut(from, to int) mem.MutView[T] {
	return v.ViewMut().SliceMut(from, to)
}

// Iter returns a double-ended iterator yielding element copies.
func (v *Vector[T]) Iter() *mem.ViewIter[T] {
	return v.View().Iter()
}

// IterMut returns a double-ended iterator yielding element addresses.
func (v *Vector[T]) IterMut() *mem.Iter[T] {
	return v.ViewMut().IterMut()
}

// Reverse reverses the live elements in place.
func (v *Vector[T]) Reverse() {
	v.ViewMut().Reverse()
}

// Swap exchanges the elements at i and j. Out-of-range indices panic.
func (v *Vector[T]) Swap(i, j int) {
	v.ViewMut().Swap(i, j)
}

// SortFunc sorts the live elements in place by cmp. See
// mem.MutView.SortFunc for the comparator contract.
func (v *Vector[T]) SortFunc(cmp func(a, b T) int) {
	v.ViewMut().SortFunc(cmp)
}

// Clone builds a new vector of exactly this one's length on the same
// allocator and copies each live element in order. A failure part way
// through destroys the partial clone before the error is returned.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out, err := WithCapacityIn[T](v.Len(), v.alloc)
	if err != nil {
		return nil, err
	}
	it := v.Iter()
	for value, ok := it.Next(); ok; value, ok = it.Next() {
		if err := out.Push(value); err != nil {
			out.Free()
			return nil, err
		}
	}
	return out, nil
}

// Free drops every live element and releases the allocation. The
// vector is empty and reusable afterwards. Calling Free twice is
// harmless.
func (v *Vector[T]) Free() {
	for {
		if _, ok := v.Pop(); !ok {
			break
		}
	}
	if v.capacity > 0 {
		layout, err := mem.LayoutFor[T](v.capacity)
		if err == nil && layout.Size > 0 {
			v.alloc.Deallocate(v.buf.Head(), layout)
		}
	}
	v.buf = mem.Dangling[T]()
	v.capacity = 0
}

// slot returns the address of slot index within the capacity region,
// including the uninitialized tail past the live length.
func (v *Vector[T]) slot(index int) *T {
	spare := mem.MakeRange[T](v.buf.Head(), v.capacity)
	p, ok := spare.Get(index)
	if !ok {
		panic(fmt.Sprintf("vector: slot %d out of capacity %d", index, v.capacity))
	}
	return p
}

// Sort sorts a vector of naturally ordered elements ascending.
func Sort[T cmp.Ordered](v *Vector[T]) {
	mem.Sort(v.ViewMut())
}

// SortKeyed sorts a vector by the key each element maps to.
func SortKeyed[T any, K cmp.Ordered](v *Vector[T], key func(T) K) {
	mem.SortKeyed(v.ViewMut(), key)
}

// Equal reports whether two vectors hold equal elements in the same
// order.
func Equal[T comparable](a, b *Vector[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		av, _ := a.Get(i)
		bv, _ := b.Get(i)
		if av != bv {
			return false
		}
	}
	return true
}

// nextPowerOfTwo rounds n up to a power of two. n <= 0 maps to 0; the
// second result is false when the rounding overflows int.
func nextPowerOfTwo(n int) (int, bool) {
	if n <= 0 {
		return 0, true
	}
	if n&(n-1) == 0 {
		return n, true
	}
	shift := bits.Len(uint(n))
	if shift >= bits.UintSize-1 {
		return 0, false
	}
	return 1 << shift, true
}
