// Package alloc
// Author: momentics <momentics@gmail.com>
//
// Concrete allocators implementing the api.Allocator contract:
// the Go-heap-backed Heap, the mmap-backed System allocator (Linux,
// with a heap fallback elsewhere), the free-list Recycler wrapper and
// the instrumentation Counting wrapper. Platform-specific code lives in
// separate files behind build tags; see system_linux.go.
//
// All allocators hand out raw, unscanned memory: store only
// pointer-free element types in it unless the referenced objects are
// kept reachable by other means.
package alloc
