// File: vector/vector_test.go
// Author: momentics <momentics@gmail.com>

package vector_test

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vec/alloc"
	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/vector"
)

// brokenAllocator rejects every request; used to exercise failure
// paths.
type brokenAllocator struct{}

var errBroken = errors.New("broken allocator")

func (brokenAllocator) Allocate(api.Layout) (unsafe.Pointer, error) {
	return nil, api.NewAllocError("out of memory", errBroken)
}
func (brokenAllocator) Grow(unsafe.Pointer, api.Layout, api.Layout) (unsafe.Pointer, error) {
	return nil, api.NewAllocError("out of memory", errBroken)
}
func (brokenAllocator) Shrink(unsafe.Pointer, api.Layout, api.Layout) (unsafe.Pointer, error) {
	return nil, api.NewAllocError("out of memory", errBroken)
}
func (brokenAllocator) Deallocate(unsafe.Pointer, api.Layout) {}

func TestPushPopLIFO(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()

	values := []int{3, 1, 4, 1, 5, 9, 2, 6}
	for _, x := range values {
		require.NoError(t, v.Push(x))
	}
	require.Equal(t, len(values), v.Len())
	assert.GreaterOrEqual(t, v.Cap(), v.Len())

	for i := len(values) - 1; i >= 0; i-- {
		got, ok := v.Pop()
		require.True(t, ok)
		assert.Equal(t, values[i], got)
	}
	_, ok := v.Pop()
	assert.False(t, ok, "pop on an empty vector reports absence")
}

func TestGetAfterPushes(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()

	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, v.Push(i * i))
	}
	require.Equal(t, n, v.Len())
	require.GreaterOrEqual(t, v.Cap(), n)
	for i := 0; i < n; i++ {
		got, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*i, got)
	}
	_, ok := v.Get(n)
	assert.False(t, ok, "get past the live length reports absence without aborting")
}

func TestIndexVsGetErrorStyles(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	require.NoError(t, v.Push(1))

	_, ok := v.Get(10)
	assert.False(t, ok)
	assert.Panics(t, func() { v.Index(10) })
	assert.Panics(t, func() { v.At(10) })
}

func TestWithCapacityThenPush(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	v, err := vector.WithCapacityIn[int](0, counting)
	require.NoError(t, err)
	defer v.Free()

	require.Zero(t, counting.Allocs(), "capacity 0 must not allocate")
	require.NoError(t, v.Push(1))

	assert.EqualValues(t, 1, counting.Allocs(), "first push allocates exactly once")
	assert.Positive(t, v.Cap())
	assert.Zero(t, v.Cap()&(v.Cap()-1), "grown capacity must be a power of two")
	got, ok := v.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestReserveDoubling(t *testing.T) {
	v, err := vector.WithCapacity[int](3)
	require.NoError(t, err)
	defer v.Free()

	require.NoError(t, v.Reserve(4))
	assert.Equal(t, 8, v.Cap(), "next_power_of_two(3+4)")
	require.NoError(t, v.Reserve(0))
	assert.Equal(t, 8, v.Cap(), "satisfied reserve is a no-op")
}

func TestReserveCapacityOverflow(t *testing.T) {
	v, err := vector.WithCapacity[int](1)
	require.NoError(t, err)
	defer v.Free()

	err = v.Reserve(math.MaxInt)
	require.Error(t, err, "overflowing target capacity must not succeed silently")
	assert.True(t, errors.Is(err, api.ErrLayoutOverflow))
	assert.Equal(t, 1, v.Cap(), "failed reserve leaves the vector unchanged")
	assert.Zero(t, v.Len())
}

func TestWithCapacityLayoutOverflow(t *testing.T) {
	_, err := vector.WithCapacity[int64](math.MaxInt / 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrLayoutOverflow))

	_, err = vector.WithCapacity[int](-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrLayoutOverflow))
}

func TestReserveFailureLeavesVectorUnchanged(t *testing.T) {
	v := vector.NewIn[int](brokenAllocator{})

	err := v.Reserve(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBroken))
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
}

func TestPushFailureKeepsValue(t *testing.T) {
	v := vector.NewIn[int](brokenAllocator{})

	value := 77
	err := v.Push(value)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBroken))
	assert.Equal(t, 77, value, "caller retains the value after a failed push")
	assert.Zero(t, v.Len())
}

func TestShrinkToFit(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	v, err := vector.WithCapacityIn[int](16, counting)
	require.NoError(t, err)
	defer v.Free()

	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}
	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 5, v.Cap())
	assert.EqualValues(t, 1, counting.Shrinks())
	for i := 0; i < 5; i++ {
		got, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, got)
	}

	// Shrinking an empty vector releases the allocation entirely.
	empty, err := vector.WithCapacityIn[int](8, counting)
	require.NoError(t, err)
	require.NoError(t, empty.ShrinkToFit())
	assert.Zero(t, empty.Cap())
}

func TestSliceViews(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Push(i))
	}

	view := v.Slice(2, 7)
	require.Equal(t, 5, view.Len())
	for k := 0; k < view.Len(); k++ {
		want, _ := v.Get(2 + k)
		got, _ := view.Get(k)
		assert.Equal(t, want, got)
	}

	assert.Panics(t, func() { v.Slice(2, 11) }, "end past the live length is a contract violation")
	assert.Panics(t, func() { v.Slice(5, 2) })
}

func TestSplitBorrowOnVector(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	for i := 1; i <= 6; i++ {
		require.NoError(t, v.Push(i))
	}

	left, right := v.ViewMut().SplitAtMut(3)
	left.Reverse()
	right.Reverse()

	var got []int
	it := v.Iter()
	for x, ok := it.Next(); ok; x, ok = it.Next() {
		got = append(got, x)
	}
	assert.Equal(t, []int{3, 2, 1, 6, 5, 4}, got)
}

func TestVectorSort(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	for _, x := range []int{3, 5, 8, 1, 2, 7, 4, 6} {
		require.NoError(t, v.Push(x))
	}

	vector.Sort(v)
	for i := 0; i < 8; i++ {
		got, _ := v.Get(i)
		assert.Equal(t, i+1, got)
	}
}

func TestVectorSortKeyed(t *testing.T) {
	// Pointer-free element type: allocator storage is not scanned for
	// Go pointers.
	type job struct {
		id       uint32
		priority int32
	}
	v := vector.New[job]()
	defer v.Free()
	require.NoError(t, v.Push(job{id: 10, priority: 3}))
	require.NoError(t, v.Push(job{id: 20, priority: 1}))
	require.NoError(t, v.Push(job{id: 30, priority: 2}))

	vector.SortKeyed(v, func(j job) int32 { return j.priority })
	first, _ := v.Get(0)
	assert.EqualValues(t, 20, first.id)
}

func TestReverse(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Push(i))
	}

	v.Reverse()
	first, _ := v.Get(0)
	last, _ := v.Get(9)
	assert.Equal(t, 9, first)
	assert.Equal(t, 0, last)

	v.Reverse()
	first, _ = v.Get(0)
	assert.Equal(t, 0, first, "double reverse restores the original order")
}

func TestClone(t *testing.T) {
	v := vector.New[int]()
	defer v.Free()
	for i := 0; i < 4; i++ {
		require.NoError(t, v.Push(i))
	}

	c, err := v.Clone()
	require.NoError(t, err)
	defer c.Free()

	assert.True(t, vector.Equal(v, c))
	assert.Equal(t, v.Len(), c.Cap(), "clone capacity is exactly the source length")

	*c.At(0) = 99
	got, _ := v.Get(0)
	assert.Equal(t, 0, got, "clone storage is independent")
	assert.False(t, vector.Equal(v, c))
}

func TestDrainConsumesAndFreesOnce(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	v := vector.NewIn[int](counting)
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}

	d := v.Drain()
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	require.Equal(t, 5, d.Len())

	for i := 0; i < 5; i++ {
		got, ok := d.Next()
		require.True(t, ok)
		assert.Equal(t, i, got)
	}
	_, ok := d.Next()
	assert.False(t, ok)

	stats := counting.Stats()
	assert.Equal(t, stats.TotalAlloc, stats.TotalFree, "exhausted drain frees the allocation")

	d.Close() // must not double free
	assert.Equal(t, stats.TotalFree, counting.Stats().TotalFree)
}

func TestDrainClosedEarly(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	v := vector.NewIn[int](counting)
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}

	d := v.Drain()
	d.Next()
	d.Close()

	stats := counting.Stats()
	assert.Equal(t, stats.TotalAlloc, stats.TotalFree, "closed drain frees exactly once")
}

func TestFreeThenReuse(t *testing.T) {
	counting := alloc.NewCounting(alloc.NewHeap())
	v := vector.NewIn[int](counting)
	require.NoError(t, v.Push(1))

	v.Free()
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.Zero(t, counting.Stats().InUse)

	require.NoError(t, v.Push(2))
	got, _ := v.Get(0)
	assert.Equal(t, 2, got)
	v.Free()
}

func TestVectorOnSystemAllocator(t *testing.T) {
	v := vector.NewIn[uint64](alloc.NewSystem())
	defer v.Free()

	for i := uint64(0); i < 1000; i++ {
		require.NoError(t, v.Push(i*7))
	}
	for i := 0; i < 1000; i++ {
		got, ok := v.Get(i)
		require.True(t, ok)
		require.Equal(t, uint64(i)*7, got)
	}
}

func TestVectorOnRecycler(t *testing.T) {
	r := alloc.NewRecycler(alloc.NewHeap())
	for round := 0; round < 3; round++ {
		v := vector.NewIn[int](r)
		for i := 0; i < 64; i++ {
			require.NoError(t, v.Push(i))
		}
		vector.Sort(v)
		v.Free()
	}
	r.Flush()
}
