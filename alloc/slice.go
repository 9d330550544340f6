package alloc

import "unsafe"

// SizeOf returns the in-memory size of T in bytes.
func SizeOf[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// MakeSlice allocates a slice with length and capacity n, charged against a.
func MakeSlice[T any](a Allocator, n int) ([]T, error) {
	if n < 0 {
		panic("alloc: negative capacity")
	}
	if err := a.Reserve(int64(n) * SizeOf[T]()); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// GrowSlice relocates s to a slice with capacity newCap, preserving length
// and contents. Only the capacity delta is charged; the old backing array is
// considered released once the caller drops s. On budget exhaustion s is left
// valid and unchanged.
func GrowSlice[T any](a Allocator, s []T, newCap int) ([]T, error) {
	if newCap <= cap(s) {
		panic("alloc: grow capacity must exceed current capacity")
	}
	if err := a.Reserve(int64(newCap-cap(s)) * SizeOf[T]()); err != nil {
		return nil, err
	}
	grown := make([]T, len(s), newCap)
	copy(grown, s)
	return grown, nil
}

// FreeSlice returns the capacity bytes of s to the allocator.
func FreeSlice[T any](a Allocator, s []T) {
	a.Release(int64(cap(s)) * SizeOf[T]())
}
