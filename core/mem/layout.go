// File: core/mem/layout.go
// Author: momentics <momentics@gmail.com>
//
// Allocation layout computation for typed element runs, with explicit
// overflow detection. A layout request is fully determined by the
// element size, element alignment and element count.

package mem

import (
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// sizeAlign reports the byte size and alignment of one element of T.
func sizeAlign[T any]() (uintptr, uintptr) {
	var zero T
	return unsafe.Sizeof(zero), unsafe.Alignof(zero)
}

// LayoutFor computes the allocation layout for count contiguous elements
// of type T. A count of zero, or a zero-sized element type, yields a
// zero-size layout meaning "no allocation". Overflow of the total byte
// size is reported as a layout error, never truncated.
func LayoutFor[T any](count int) (api.Layout, error) {
	size, align := sizeAlign[T]()
	if count < 0 {
		return api.Layout{}, api.NewLayoutError("negative element count").
			WithContext("count", count)
	}
	if size == 0 || count == 0 {
		return api.Layout{Size: 0, Align: align}, nil
	}
	if uintptr(count) > ^uintptr(0)/size {
		return api.Layout{}, api.NewLayoutError("element count overflows layout size").
			WithContext("count", count).
			WithContext("elem_size", size)
	}
	return api.Layout{Size: size * uintptr(count), Align: align}, nil
}
