// File: api/alloc.go
// Author: momentics <momentics@gmail.com>
//
// Abstract memory allocator contract consumed by the vector container.
// Allocators report failure as error values and never terminate the
// process. All platform- and strategy-specific allocators implement
// this interface; see the alloc package.

package api

import "unsafe"

// Layout describes a single allocation request: total byte size and
// required alignment. A Layout is fully determined by the element size,
// element alignment and element count; Size == 0 means "no allocation".
type Layout struct {
	Size  uintptr
	Align uintptr
}

// Allocator abstracts raw memory management for container storage.
//
// Grow and Shrink may relocate the block; the returned pointer replaces
// the old one and the old pointer must not be used afterwards. Existing
// bytes up to min(old.Size, new.Size) are preserved across both.
//
// Deallocate must never be called with a zero-size layout, and never
// fails.
//
// Memory handed out by an Allocator is raw: it is not scanned for Go
// pointers. Callers must only store pointer-free element types in it,
// or guarantee referenced objects stay reachable by other means.
type Allocator interface {
	// Allocate returns a block of at least layout.Size bytes aligned to
	// layout.Align. The block contents are uninitialized.
	Allocate(layout Layout) (unsafe.Pointer, error)

	// Grow resizes the block at ptr from oldLayout to newLayout
	// (newLayout.Size >= oldLayout.Size), possibly relocating it.
	Grow(ptr unsafe.Pointer, oldLayout, newLayout Layout) (unsafe.Pointer, error)

	// Shrink resizes the block at ptr from oldLayout down to newLayout
	// (0 < newLayout.Size <= oldLayout.Size), possibly relocating it.
	Shrink(ptr unsafe.Pointer, oldLayout, newLayout Layout) (unsafe.Pointer, error)

	// Deallocate releases the block at ptr. layout must match the layout
	// the block currently has.
	Deallocate(ptr unsafe.Pointer, layout Layout)
}

// StatsProvider is implemented by allocators that track usage counters.
type StatsProvider interface {
	Stats() AllocatorStats
}

// AllocatorStats aggregates allocation accounting for observability.
type AllocatorStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	BytesLive  int64
}
