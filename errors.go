package dictgo

import "github.com/hupe1980/dictgo/alloc"

// ErrOutOfMemory is returned when the configured allocator refuses a
// reservation. It aliases alloc.ErrOutOfMemory so callers can match with
// errors.Is without importing the alloc package.
var ErrOutOfMemory = alloc.ErrOutOfMemory
