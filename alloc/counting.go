// File: alloc/counting.go
// Author: momentics <momentics@gmail.com>
//
// Instrumented allocator wrapper. Counts every contract operation and
// tracks live bytes; used by tests to prove allocation-count
// properties (a zero-sized-element vector never calls its allocator,
// the first push out of zero capacity allocates exactly once).

package alloc

import (
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// Counting wraps an inner allocator with atomic accounting. Safe for
// concurrent use if the inner allocator is.
type Counting struct {
	inner api.Allocator

	allocs    atomic.Int64
	frees     atomic.Int64
	grows     atomic.Int64
	shrinks   atomic.Int64
	bytesLive atomic.Int64
}

// NewCounting wraps inner with counters starting at zero.
func NewCounting(inner api.Allocator) *Counting {
	return &Counting{inner: inner}
}

func (c *Counting) Allocate(layout api.Layout) (unsafe.Pointer, error) {
	ptr, err := c.inner.Allocate(layout)
	if err != nil {
		return nil, err
	}
	c.allocs.Add(1)
	c.bytesLive.Add(int64(layout.Size))
	return ptr, nil
}

func (c *Counting) Grow(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	newPtr, err := c.inner.Grow(ptr, oldLayout, newLayout)
	if err != nil {
		return nil, err
	}
	c.grows.Add(1)
	c.bytesLive.Add(int64(newLayout.Size) - int64(oldLayout.Size))
	return newPtr, nil
}

func (c *Counting) Shrink(ptr unsafe.Pointer, oldLayout, newLayout api.Layout) (unsafe.Pointer, error) {
	newPtr, err := c.inner.Shrink(ptr, oldLayout, newLayout)
	if err != nil {
		return nil, err
	}
	c.shrinks.Add(1)
	c.bytesLive.Add(int64(newLayout.Size) - int64(oldLayout.Size))
	return newPtr, nil
}

func (c *Counting) Deallocate(ptr unsafe.Pointer, layout api.Layout) {
	c.inner.Deallocate(ptr, layout)
	c.frees.Add(1)
	c.bytesLive.Add(-int64(layout.Size))
}

// Allocs returns the number of successful Allocate calls.
func (c *Counting) Allocs() int64 { return c.allocs.Load() }

// Frees returns the number of Deallocate calls.
func (c *Counting) Frees() int64 { return c.frees.Load() }

// Grows returns the number of successful Grow calls.
func (c *Counting) Grows() int64 { return c.grows.Load() }

// Shrinks returns the number of successful Shrink calls.
func (c *Counting) Shrinks() int64 { return c.shrinks.Load() }

// Calls returns the total number of contract calls observed.
func (c *Counting) Calls() int64 {
	return c.allocs.Load() + c.frees.Load() + c.grows.Load() + c.shrinks.Load()
}

// Stats implements api.StatsProvider.
func (c *Counting) Stats() api.AllocatorStats {
	allocs := c.allocs.Load()
	frees := c.frees.Load()
	return api.AllocatorStats{
		TotalAlloc: allocs,
		TotalFree:  frees,
		InUse:      allocs - frees,
		BytesLive:  c.bytesLive.Load(),
	}
}

var (
	_ api.Allocator     = (*Counting)(nil)
	_ api.StatsProvider = (*Counting)(nil)
)
