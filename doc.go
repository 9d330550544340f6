// Package dictgo provides a small in-process data layer: a growable sequence,
// an integer hash index with external chaining and tombstone deletion, a
// tagged-union variant value, and a string-keyed dictionary of variants built
// on top of them.
//
// # Quick Start
//
//	d, _ := dictgo.New(128, 32)
//	_ = d.Set("mr.key", "mr.value")
//	fmt.Println(d.Get("mr.key", "<missing>"))
//
// Typed values:
//
//	v := variant.Int32(42)
//	_ = d.SetValue("answer", &v)
//
// # Memory Model
//
// Every container exclusively owns its backing storage and charges it against
// a pluggable alloc.Allocator. Growth operations have strong exception
// safety: when the allocator refuses a reservation the container is left
// observably unchanged and ErrOutOfMemory is returned. Borrowed views
// (Dict.GetValue, Seq.Elems, index iterators) are valid only until the next
// mutating call on their container.
//
// # Key Identity
//
// Dictionary keys are truncated to 8 significant characters and compared
// ASCII case-folded by default. Keys sharing a truncated prefix are
// indistinguishable to the dictionary; this is a documented identity limit,
// not an error. Use WithCaseSensitiveKeys for exact comparison.
//
// All components are single-threaded with no internal synchronization and no
// package-level mutable state, so they are safe to call from
// instrumentation-sensitive contexts such as allocator hooks.
package dictgo
