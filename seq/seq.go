// Package seq implements a contiguous growable sequence with an amortized
// multiplicative growth policy.
package seq

import "github.com/hupe1980/dictgo/alloc"

// Seq is a contiguous, resizable sequence of elements.
//
// A Seq exclusively owns its backing storage. Any mutating call may relocate
// the buffer, so views returned by Elems and element addresses obtained
// earlier are invalid after the next mutation. A sequence that was never
// allocated (or was freed) is an empty sequence, not an error.
type Seq[T any] struct {
	elems []T
	alloc alloc.Allocator
}

// New creates a sequence with capacity for initial elements and length 0.
// If a is nil, alloc.Heap is used.
func New[T any](a alloc.Allocator, initial int) (*Seq[T], error) {
	if a == nil {
		a = alloc.Heap
	}
	if initial < 0 {
		panic("seq: negative initial capacity")
	}
	elems, err := alloc.MakeSlice[T](a, initial)
	if err != nil {
		return nil, err
	}
	return &Seq[T]{elems: elems[:0], alloc: a}, nil
}

// Len returns the number of populated elements.
func (s *Seq[T]) Len() int { return len(s.elems) }

// Cap returns the element capacity of the backing storage.
func (s *Seq[T]) Cap() int { return cap(s.elems) }

// grow relocates the backing storage to fit incr more elements. The new
// capacity is the larger of len+incr and cap*3/2 and always strictly exceeds
// the old capacity.
func (s *Seq[T]) grow(incr int) error {
	newCap := cap(s.elems) * 3 / 2
	if minCap := len(s.elems) + incr; minCap > newCap {
		newCap = minCap
	}
	grown, err := alloc.GrowSlice(s.alloc, s.elems, newCap)
	if err != nil {
		return err
	}
	s.elems = grown
	return nil
}

// Append adds v at the end, growing the backing storage if needed. On budget
// exhaustion the sequence is left unchanged and the failure is reported.
func (s *Seq[T]) Append(v T) error {
	if len(s.elems) == cap(s.elems) {
		if err := s.grow(1); err != nil {
			return err
		}
	}
	s.elems = append(s.elems, v)
	return nil
}

// Reserve ensures capacity for n additional elements without changing the
// length. Same growth and failure contract as Append.
func (s *Seq[T]) Reserve(n int) error {
	if n < 0 {
		panic("seq: negative reserve count")
	}
	if len(s.elems)+n <= cap(s.elems) {
		return nil
	}
	return s.grow(n)
}

// Last returns the final element. It panics when the sequence is empty.
func (s *Seq[T]) Last() T {
	if len(s.elems) == 0 {
		panic("seq: Last on empty sequence")
	}
	return s.elems[len(s.elems)-1]
}

// At returns the element at index i.
func (s *Seq[T]) At(i int) T { return s.elems[i] }

// SetAt replaces the element at index i.
func (s *Seq[T]) SetAt(i int, v T) { s.elems[i] = v }

// Elems returns a view of the populated elements for [begin, end) iteration.
// The view is valid only until the next mutating call.
func (s *Seq[T]) Elems() []T { return s.elems }

// Free returns the backing storage to the allocator. The sequence is empty
// and reusable afterwards.
func (s *Seq[T]) Free() {
	alloc.FreeSlice(s.alloc, s.elems)
	s.elems = nil
}
