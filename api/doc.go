// Package api
// Author: momentics <momentics@gmail.com>
//
// Capability interfaces and shared types for hioload-vec.
// Defines the allocator contract all container storage is obtained
// through, plus the structured error types used across the library.
// Implementations live in the alloc package; containers in vector.
package api
