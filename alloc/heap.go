// File: alloc/heap.go
// Author: momentics <momentics@gmail.com>
//
// Go-runtime-backed allocator. Blocks handed out as raw pointers are
// pinned in a registry so the collector keeps the backing arrays alive
// until Deallocate. Grow and Shrink relocate via allocate-copy-release
// since the runtime has no realloc.

package alloc

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// Heap allocates from the Go heap. Safe for concurrent use.
type Heap struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte // aligned head -> backing array
}

// NewHeap creates an empty heap allocator.
func NewHeap() *Heap {
	return &Heap{blocks: make(map[unsafe.Pointer][]byte)}
}

// Allocate returns an uninitialized block of layout.Size bytes aligned
// to layout.Align.
func (h *Heap) Allocate(layout api.Layout) (unsafe.Pointer, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	// Over-allocate by align-1 and round the head up; the registry keys
	// on the aligned head.
	buf := make([]byte, layout.Size+layout.Align-1)
	ptr := unsafe.Pointer(&buf[0])
	if off := uintptr(ptr) % layout.Align; off != 0 {
		ptr = unsafe.Add(ptr, layout.Align-off)
	}
	h.mu.Lock()
	h.blocks[ptr] = buf
	h.mu.Unlock()
	return ptr, nil
}

// Grow moves the block at ptr to a new allocation of newLayout,
// preserving oldLayout.Size bytes.
func (h *Heap) Grow(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size < oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "grow to a smaller layout", api.ErrInvalidArgument)
	}
	return h.relocate(ptr, oldLayout, newLayout)
}

// Shrink moves the block at ptr to a new allocation of newLayout,
// preserving newLayout.Size bytes.
func (h *Heap) Shrink(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size > oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "shrink to a larger layout", api.ErrInvalidArgument)
	}
	return h.relocate(ptr, oldLayout, newLayout)
}

func (h *Heap) relocate(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	newPtr, err := h.Allocate(newLayout)
	if err != nil {
		return nil, err
	}
	n := oldLayout.Size
	if newLayout.Size < n {
		n = newLayout.Size
	}
	copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
	h.Deallocate(ptr, oldLayout)
	return newPtr, nil
}

// Deallocate unpins the block at ptr, returning it to the collector.
// Releasing a pointer the allocator does not own is a caller bug.
func (h *Heap) Deallocate(ptr unsafe.Pointer, layout api.Layout) {
	h.mu.Lock()
	_, ok := h.blocks[ptr]
	delete(h.blocks, ptr)
	h.mu.Unlock()
	if !ok {
		panic("alloc: deallocate of a pointer this allocator does not own")
	}
}

// checkLayout rejects requests the allocator contract forbids.
func checkLayout(layout api.Layout) error {
	if layout.Size == 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "zero-size allocation", api.ErrInvalidArgument)
	}
	if layout.Align == 0 || layout.Align&(layout.Align-1) != 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "alignment must be a power of two", api.ErrInvalidArgument).
			WithContext("align", layout.Align)
	}
	return nil
}

var _ api.Allocator = (*Heap)(nil)
