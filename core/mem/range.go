// File: core/mem/range.go
// Author: momentics <momentics@gmail.com>
//
// Range is the universal low-level handle of the library: a non-owning
// (pointer, length) pair over contiguous elements of one type. Views,
// iterators and the vector container are all projections of a Range.

package mem

import (
	"fmt"
	"unsafe"
)

// sentinelAnchor backs the dangling head used by empty ranges and by
// every range over a zero-sized element type. The address is never
// dereferenced for a read or write of nonzero width.
var sentinelAnchor byte

// Sentinel returns the shared non-nil dangling address.
func Sentinel() unsafe.Pointer {
	return unsafe.Pointer(&sentinelAnchor)
}

// Range is a non-owning handle over length contiguous elements of T
// starting at head. It never allocates or frees. Many Ranges may alias
// the same storage; write aliasing discipline is the caller's problem.
//
// Invariants: head is never nil; when length is 0 or T is zero-sized,
// head is the sentinel address.
type Range[T any] struct {
	head   unsafe.Pointer
	length int
}

// Dangling returns the empty range with the sentinel head.
func Dangling[T any]() Range[T] {
	return Range[T]{head: Sentinel()}
}

// MakeRange constructs a range over length elements at head. The caller
// guarantees head is valid for that many elements (or length is 0).
// Zero-sized element types are normalized to the sentinel head so no
// pointer arithmetic ever happens on them.
func MakeRange[T any](head unsafe.Pointer, length int) Range[T] {
	if length < 0 {
		panic(fmt.Sprintf("mem: negative range length %d", length))
	}
	size, _ := sizeAlign[T]()
	if size == 0 || head == nil {
		head = Sentinel()
	}
	return Range[T]{head: head, length: length}
}

// RangeOf borrows a Go slice's backing array as a Range. The caller
// must keep the slice reachable for as long as the range is used.
func RangeOf[T any](s []T) Range[T] {
	if len(s) == 0 {
		return Dangling[T]()
	}
	return MakeRange[T](unsafe.Pointer(&s[0]), len(s))
}

// Head returns the range's base address.
func (r Range[T]) Head() unsafe.Pointer { return r.head }

// Len returns the number of elements covered.
func (r Range[T]) Len() int { return r.length }

// IsEmpty reports whether the range covers no elements.
func (r Range[T]) IsEmpty() bool { return r.length == 0 }

// Get returns the address of the element at index, or false when index
// is outside [0, length). It never panics and never forms an address
// outside the range.
func (r Range[T]) Get(index int) (*T, bool) {
	if index < 0 || index >= r.length {
		return nil, false
	}
	size, _ := sizeAlign[T]()
	if size == 0 {
		return (*T)(r.head), true
	}
	return (*T)(unsafe.Add(r.head, uintptr(index)*size)), true
}

// Slice returns the sub-range [from, to). Malformed bounds are a
// contract violation and panic before any address is formed.
func (r Range[T]) Slice(from, to int) Range[T] {
	if from < 0 || from > to || to > r.length {
		panic(fmt.Sprintf("mem: range bounds out of range [%d:%d] with length %d", from, to, r.length))
	}
	size, _ := sizeAlign[T]()
	if size == 0 {
		return Range[T]{head: r.head, length: to - from}
	}
	return Range[T]{
		head:   unsafe.Add(r.head, uintptr(from)*size),
		length: to - from,
	}
}

// SplitAt splits the range into [0, index) and [index, length).
// index > length is a contract violation.
func (r Range[T]) SplitAt(index int) (Range[T], Range[T]) {
	if index < 0 || index > r.length {
		panic(fmt.Sprintf("mem: split index %d out of range for length %d", index, r.length))
	}
	return r.Slice(0, index), r.Slice(index, r.length)
}

// Iter returns a bounded double-ended iterator over every element.
func (r Range[T]) Iter() *Iter[T] {
	size, _ := sizeAlign[T]()
	if size == 0 {
		return &Iter[T]{head: r.head, tail: r.head, zstLeft: r.length}
	}
	return &Iter[T]{
		head:     r.head,
		tail:     unsafe.Add(r.head, uintptr(r.length)*size),
		elemSize: size,
	}
}
