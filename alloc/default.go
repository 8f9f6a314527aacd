// File: alloc/default.go
// Author: momentics <momentics@gmail.com>

package alloc

import (
	"sync"

	"github.com/momentics/hioload-vec/api"
)

var (
	defaultOnce  sync.Once
	defaultAlloc api.Allocator
)

// Default returns the process-wide allocator used by vectors created
// without an explicit one, so independent containers share a single
// heap registry instead of fragmenting pins.
func Default() api.Allocator {
	defaultOnce.Do(func() {
		defaultAlloc = NewHeap()
	})
	return defaultAlloc
}
