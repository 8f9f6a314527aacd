// File: core/mem/sort.go
// Author: momentics <momentics@gmail.com>
//
// In-place unstable quicksort over a raw Range. Lomuto partition with
// the last element as pivot; the pivot stays fixed rather than
// randomized or median-of-three, trading adversarial worst-case
// resistance for a single forward scan. See DESIGN.md.

package mem

import "cmp"

// Sort sorts a mutable view of naturally ordered elements ascending.
func Sort[T cmp.Ordered](m MutView[T]) {
	m.SortFunc(cmp.Compare[T])
}

// SortKeyed sorts a mutable view by the key each element maps to.
func SortKeyed[T any, K cmp.Ordered](m MutView[T], key func(T) K) {
	m.SortFunc(func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}

func quicksort[T any](r Range[T], cmp func(a, b T) int) {
	n := r.Len()
	if n <= 1 {
		return
	}
	p := lomutoPartition(r, cmp)
	quicksort(r.Slice(0, p), cmp)
	quicksort(r.Slice(p+1, n), cmp)
}

// lomutoPartition partitions r around its last element. A single
// forward scan moves everything strictly less than the pivot before a
// store cursor, then the pivot is swapped into the cursor slot. Returns
// the pivot's final index.
func lomutoPartition[T any](r Range[T], cmp func(a, b T) int) int {
	n := r.Len()
	pivot, _ := r.Get(n - 1)
	store := 0
	for i := 0; i < n-1; i++ {
		el, _ := r.Get(i)
		if cmp(*el, *pivot) < 0 {
			if i != store {
				at, _ := r.Get(store)
				*el, *at = *at, *el
			}
			store++
		}
	}
	if store != n-1 {
		at, _ := r.Get(store)
		*at, *pivot = *pivot, *at
	}
	return store
}
