package alloc

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrOutOfMemory is returned when a reservation would exceed the allocator's
// budget.
var ErrOutOfMemory = errors.New("alloc: out of memory")

// Allocator accounts for memory owned by a container.
//
// Reserve is called before a container allocates or grows backing storage and
// may refuse by returning ErrOutOfMemory; Release returns bytes to the
// budget. Implementations must not block and must not keep hidden global
// state, so calls are safe from instrumentation-sensitive contexts such as
// allocator hooks.
type Allocator interface {
	Reserve(bytes int64) error
	Release(bytes int64)
}

// Heap is the default allocator. It tracks nothing and never fails.
var Heap Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Reserve(bytes int64) error { return nil }
func (heapAllocator) Release(bytes int64)       {}

// LimitedAllocator enforces a hard byte budget.
type LimitedAllocator struct {
	sem  *semaphore.Weighted
	max  int64
	used atomic.Int64
}

// Limited returns an allocator that refuses reservations once usage would
// exceed maxBytes.
func Limited(maxBytes int64) *LimitedAllocator {
	if maxBytes <= 0 {
		panic("alloc: non-positive budget")
	}
	return &LimitedAllocator{
		sem: semaphore.NewWeighted(maxBytes),
		max: maxBytes,
	}
}

// Reserve acquires bytes from the budget without blocking.
func (a *LimitedAllocator) Reserve(bytes int64) error {
	if bytes <= 0 {
		return nil
	}
	if !a.sem.TryAcquire(bytes) {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, bytes, a.used.Load(), a.max)
	}
	a.used.Add(bytes)
	return nil
}

// Release returns bytes to the budget.
func (a *LimitedAllocator) Release(bytes int64) {
	if bytes <= 0 {
		return
	}
	a.used.Add(-bytes)
	a.sem.Release(bytes)
}

// Used reports the bytes currently reserved.
func (a *LimitedAllocator) Used() int64 { return a.used.Load() }
