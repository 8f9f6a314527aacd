// File: alloc/recycler.go
// Author: momentics <momentics@gmail.com>
//
// Free-list allocator wrapper. Deallocated blocks are retained per
// layout class and served back for later allocations of the same
// layout, amortizing allocator churn for workloads that repeatedly
// build and free containers of one shape.

package alloc

import (
	"sync"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-vec/api"
)

// defaultClassCapacity bounds retained blocks per layout class; excess
// frees fall through to the inner allocator.
const defaultClassCapacity = 64

// Recycler wraps an inner allocator with per-layout FIFO free lists.
// Safe for concurrent use. Recycled blocks are handed back with
// whatever bytes they last held; Allocate contents are uninitialized
// either way.
type Recycler struct {
	inner    api.Allocator
	perClass int

	mu      sync.Mutex
	classes map[api.Layout]*queue.Queue
}

// NewRecycler wraps inner with free lists of the default capacity.
func NewRecycler(inner api.Allocator) *Recycler {
	return NewRecyclerWithCapacity(inner, defaultClassCapacity)
}

// NewRecyclerWithCapacity wraps inner, retaining at most perClass
// blocks for each distinct layout.
func NewRecyclerWithCapacity(inner api.Allocator, perClass int) *Recycler {
	if perClass < 0 {
		perClass = 0
	}
	return &Recycler{
		inner:    inner,
		perClass: perClass,
		classes:  make(map[api.Layout]*queue.Queue),
	}
}

// Allocate serves from the layout's free list when possible, falling
// back to the inner allocator.
func (r *Recycler) Allocate(layout api.Layout) (unsafe.Pointer, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	r.mu.Lock()
	if q, ok := r.classes[layout]; ok && q.Length() > 0 {
		ptr := q.Remove().(unsafe.Pointer)
		r.mu.Unlock()
		return ptr, nil
	}
	r.mu.Unlock()
	return r.inner.Allocate(layout)
}

// Grow relocates through Allocate/Deallocate so both sides hit the
// free lists.
func (r *Recycler) Grow(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size < oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "grow to a smaller layout", api.ErrInvalidArgument)
	}
	return r.relocate(ptr, oldLayout, newLayout)
}

// Shrink relocates through Allocate/Deallocate so both sides hit the
// free lists.
func (r *Recycler) Shrink(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size > oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "shrink to a larger layout", api.ErrInvalidArgument)
	}
	return r.relocate(ptr, oldLayout, newLayout)
}

func (r *Recycler) relocate(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	newPtr, err := r.Allocate(newLayout)
	if err != nil {
		return nil, err
	}
	n := oldLayout.Size
	if newLayout.Size < n {
		n = newLayout.Size
	}
	copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
	r.Deallocate(ptr, oldLayout)
	return newPtr, nil
}

// Deallocate retains the block on its layout's free list while under
// capacity, otherwise releases it to the inner allocator.
func (r *Recycler) Deallocate(ptr unsafe.Pointer, layout api.Layout) {
	r.mu.Lock()
	q, ok := r.classes[layout]
	if !ok {
		q = queue.New()
		r.classes[layout] = q
	}
	if q.Length() < r.perClass {
		q.Add(ptr)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.inner.Deallocate(ptr, layout)
}

// Flush releases every retained block back to the inner allocator.
func (r *Recycler) Flush() {
	r.mu.Lock()
	classes := r.classes
	r.classes = make(map[api.Layout]*queue.Queue)
	r.mu.Unlock()
	for layout, q := range classes {
		for q.Length() > 0 {
			r.inner.Deallocate(q.Remove().(unsafe.Pointer), layout)
		}
	}
}

var _ api.Allocator = (*Recycler)(nil)
