// Package vector
// Author: momentics <momentics@gmail.com>
//
// Allocator-backed growable contiguous array for hioload-vec.
// A Vector owns exactly one allocation obtained from an api.Allocator,
// tracks live length against capacity, grows by power-of-two doubling
// and hands out non-owning views and iterators over its storage.
//
// Storage is manually managed: call Free (or exhaust a Drain) when the
// vector is no longer needed, otherwise the allocation stays live.
// Vectors are not synchronized; one goroutine mutates at a time.
package vector
