// File: alloc/alloc_test.go
// Author: momentics <momentics@gmail.com>

package alloc_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/momentics/hioload-vec/alloc"
	"github.com/momentics/hioload-vec/api"
)

func fillBlock(ptr unsafe.Pointer, n uintptr, b byte) {
	s := unsafe.Slice((*byte)(ptr), n)
	for i := range s {
		s[i] = b
	}
}

func checkBlock(t *testing.T, ptr unsafe.Pointer, n uintptr, b byte) {
	t.Helper()
	s := unsafe.Slice((*byte)(ptr), n)
	for i := range s {
		if s[i] != b {
			t.Fatalf("byte %d = %#x, want %#x", i, s[i], b)
		}
	}
}

func TestHeapAllocateAligned(t *testing.T) {
	h := alloc.NewHeap()
	for _, align := range []uintptr{1, 8, 64, 4096} {
		layout := api.Layout{Size: 100, Align: align}
		ptr, err := h.Allocate(layout)
		if err != nil {
			t.Fatalf("Allocate(align=%d) failed: %v", align, err)
		}
		if uintptr(ptr)%align != 0 {
			t.Errorf("block not aligned to %d", align)
		}
		h.Deallocate(ptr, layout)
	}
}

func TestHeapGrowPreservesBytes(t *testing.T) {
	h := alloc.NewHeap()
	small := api.Layout{Size: 32, Align: 8}
	big := api.Layout{Size: 128, Align: 8}

	ptr, err := h.Allocate(small)
	if err != nil {
		t.Fatal(err)
	}
	fillBlock(ptr, small.Size, 0xAB)

	ptr, err = h.Grow(ptr, small, big)
	if err != nil {
		t.Fatal(err)
	}
	checkBlock(t, ptr, small.Size, 0xAB)

	ptr, err = h.Shrink(ptr, big, small)
	if err != nil {
		t.Fatal(err)
	}
	checkBlock(t, ptr, small.Size, 0xAB)
	h.Deallocate(ptr, small)
}

func TestHeapRejectsBadLayouts(t *testing.T) {
	h := alloc.NewHeap()
	if _, err := h.Allocate(api.Layout{Size: 0, Align: 8}); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("zero-size allocation should fail with ErrInvalidArgument, got %v", err)
	}
	if _, err := h.Allocate(api.Layout{Size: 8, Align: 3}); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("non-power-of-two alignment should fail, got %v", err)
	}
}

func TestHeapDeallocateUnknownPanics(t *testing.T) {
	h := alloc.NewHeap()
	var x byte
	defer func() {
		if recover() == nil {
			t.Error("releasing an unowned pointer should panic")
		}
	}()
	h.Deallocate(unsafe.Pointer(&x), api.Layout{Size: 1, Align: 1})
}

func TestSystemAllocator(t *testing.T) {
	s := alloc.NewSystem()
	layout := api.Layout{Size: 4096, Align: 64}

	ptr, err := s.Allocate(layout)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	fillBlock(ptr, layout.Size, 0x5C)

	grown := api.Layout{Size: 16384, Align: 64}
	ptr, err = s.Grow(ptr, layout, grown)
	if err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	checkBlock(t, ptr, layout.Size, 0x5C)
	s.Deallocate(ptr, grown)
}

func TestRecyclerReusesBlocks(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	r := alloc.NewRecycler(counting)
	layout := api.Layout{Size: 256, Align: 8}

	ptr, err := r.Allocate(layout)
	if err != nil {
		t.Fatal(err)
	}
	r.Deallocate(ptr, layout)
	if counting.Frees() != 0 {
		t.Error("freed block should be retained, not released")
	}

	again, err := r.Allocate(layout)
	if err != nil {
		t.Fatal(err)
	}
	if again != ptr {
		t.Error("allocation of the same layout should reuse the retained block")
	}
	if counting.Allocs() != 1 {
		t.Errorf("inner allocator called %d times, want 1", counting.Allocs())
	}

	r.Deallocate(again, layout)
	r.Flush()
	if counting.Frees() != 1 {
		t.Errorf("flush should release retained blocks, frees = %d", counting.Frees())
	}
}

func TestCountingStats(t *testing.T) {
	c := alloc.NewCounting(alloc.NewHeap())
	layout := api.Layout{Size: 64, Align: 8}

	ptr, err := c.Allocate(layout)
	if err != nil {
		t.Fatal(err)
	}
	stats := c.Stats()
	if stats.TotalAlloc != 1 || stats.InUse != 1 || stats.BytesLive != 64 {
		t.Errorf("unexpected stats after allocate: %+v", stats)
	}

	grown := api.Layout{Size: 128, Align: 8}
	ptr, err = c.Grow(ptr, layout, grown)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Stats().BytesLive; got != 128 {
		t.Errorf("BytesLive after grow = %d, want 128", got)
	}

	c.Deallocate(ptr, grown)
	stats = c.Stats()
	if stats.InUse != 0 || stats.BytesLive != 0 {
		t.Errorf("unexpected stats after free: %+v", stats)
	}
}

func TestDefaultIsStable(t *testing.T) {
	if alloc.Default() != alloc.Default() {
		t.Error("Default must return the same allocator every call")
	}
}
