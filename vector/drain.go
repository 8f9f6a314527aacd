// File: vector/drain.go
// Author: momentics <momentics@gmail.com>
//
// Consuming iteration. Drain takes ownership of the vector's storage
// and yields the elements in order; the backing allocation is released
// exactly once, whether the iterator runs to exhaustion or is closed
// part way through.

package vector

import (
	"unsafe"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/core/mem"
)

// Drain is a single-pass consuming iterator over a vector's former
// elements. Not safe for concurrent use.
type Drain[T any] struct {
	it       *mem.Iter[T]
	head     unsafe.Pointer
	layout   api.Layout
	alloc    api.Allocator
	released bool
}

// Drain empties the vector, moving ownership of its storage into the
// returned iterator. The vector is immediately empty with zero
// capacity and may be reused or discarded.
func (v *Vector[T]) Drain() *Drain[T] {
	layout, err := mem.LayoutFor[T](v.capacity)
	if err != nil {
		// Capacity was validated when the allocation was made.
		panic("vector: drain of corrupt capacity")
	}
	d := &Drain[T]{
		it:     v.buf.Iter(),
		head:   v.buf.Head(),
		layout: layout,
		alloc:  v.alloc,
	}
	v.buf = mem.Dangling[T]()
	v.capacity = 0
	return d
}

// Len returns the exact number of elements not yet yielded.
func (d *Drain[T]) Len() int { return d.it.Len() }

// Next moves the next element out, releasing the allocation when the
// last one has been yielded.
func (d *Drain[T]) Next() (T, bool) {
	p, ok := d.it.Next()
	if !ok {
		var zero T
		d.release()
		return zero, false
	}
	value := *p
	if d.it.Len() == 0 {
		d.release()
	}
	return value, true
}

// Close discards any remaining elements and releases the allocation.
// Safe to call multiple times and after exhaustion.
func (d *Drain[T]) Close() {
	for d.it.Len() > 0 {
		d.it.Next()
	}
	d.release()
}

func (d *Drain[T]) release() {
	if d.released {
		return
	}
	d.released = true
	if d.layout.Size > 0 {
		d.alloc.Deallocate(d.head, d.layout)
	}
}
