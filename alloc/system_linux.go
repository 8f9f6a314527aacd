//go:build linux
// +build linux

// File: alloc/system_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux mmap-backed allocator. Storage lives outside the Go heap, so
// nothing here needs pinning; mremap handles grow/shrink and may move
// the mapping.

package alloc

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-vec/api"
)

// System allocates anonymous private mappings. Every block is
// page-aligned, which satisfies any element alignment up to the page
// size. Safe for concurrent use.
type System struct {
	pageSize uintptr

	mu       sync.Mutex
	mappings map[unsafe.Pointer][]byte // head -> full mapping
}

// NewSystem creates an mmap-backed allocator.
func NewSystem() *System {
	return &System{
		pageSize: uintptr(os.Getpagesize()),
		mappings: make(map[unsafe.Pointer][]byte),
	}
}

func (s *System) Allocate(layout api.Layout) (unsafe.Pointer, error) {
	if err := checkLayout(layout); err != nil {
		return nil, err
	}
	if layout.Align > s.pageSize {
		return nil, api.NewAllocError("alignment exceeds page size", nil).
			WithContext("align", layout.Align)
	}
	data, err := unix.Mmap(-1, 0, int(layout.Size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, api.NewAllocError("mmap failed", err).
			WithContext("size", layout.Size)
	}
	ptr := unsafe.Pointer(&data[0])
	s.mu.Lock()
	s.mappings[ptr] = data
	s.mu.Unlock()
	return ptr, nil
}

func (s *System) Grow(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size < oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "grow to a smaller layout", api.ErrInvalidArgument)
	}
	return s.remap(ptr, newLayout)
}

func (s *System) Shrink(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	if newLayout.Size > oldLayout.Size {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "shrink to a larger layout", api.ErrInvalidArgument)
	}
	return s.remap(ptr, newLayout)
}

func (s *System) remap(ptr unsafe.Pointer, newLayout api.Layout) (unsafe.Pointer, error) {
	s.mu.Lock()
	old, ok := s.mappings[ptr]
	s.mu.Unlock()
	if !ok {
		panic("alloc: remap of a pointer this allocator does not own")
	}
	data, err := unix.Mremap(old, int(newLayout.Size), unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, api.NewAllocError("mremap failed", err).
			WithContext("size", newLayout.Size)
	}
	newPtr := unsafe.Pointer(&data[0])
	s.mu.Lock()
	delete(s.mappings, ptr)
	s.mappings[newPtr] = data
	s.mu.Unlock()
	return newPtr, nil
}

func (s *System) Deallocate(ptr unsafe.Pointer, layout api.Layout) {
	s.mu.Lock()
	data, ok := s.mappings[ptr]
	delete(s.mappings, ptr)
	s.mu.Unlock()
	if !ok {
		panic("alloc: deallocate of a pointer this allocator does not own")
	}
	_ = unix.Munmap(data)
}

var _ api.Allocator = (*System)(nil)
