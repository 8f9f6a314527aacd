//go:build !linux
// +build !linux

// File: alloc/system_stub.go
// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms without the mmap-backed allocator: System is
// the heap allocator.

package alloc

// System falls back to Go-heap allocation on non-Linux platforms.
type System = Heap

// NewSystem creates the fallback allocator.
func NewSystem() *System {
	return NewHeap()
}
