// Package alloc provides the pluggable allocator consumed by the container
// packages.
//
// Go has no recoverable heap failure, so allocation failure is modeled as
// budget exhaustion: an Allocator accounts for the bytes a container owns and
// may refuse a reservation. Containers reserve before they mutate, which is
// what gives their growth operations strong exception safety.
package alloc
