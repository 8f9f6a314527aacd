// Package mem
// Author: momentics <momentics@gmail.com>
//
// Raw memory primitives for hioload-vec: non-owning pointer/length
// ranges over contiguous typed storage, bounded double-ended iterators,
// and borrowed read-only/exclusive views with in-place reverse, swap
// and quicksort.
//
// All unsafe pointer arithmetic in the library is confined to this
// package. Nothing here allocates or frees; ownership stays with the
// vector package. Zero-sized element types never touch a pointer: the
// shared sentinel address stands in for storage and only the logical
// length carries information.
//
// Go has no borrow checker, so the shared-vs-exclusive discipline of
// View and MutView is a documented contract: at most one writer may
// cover a given byte extent at a time. SplitAtMut produces disjoint
// MutViews that are independently mutable by construction.
package mem
