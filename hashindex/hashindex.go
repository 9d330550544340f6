// Package hashindex implements an open hash table that resolves hashed keys
// to integer slot values, with external per-slot chains and tombstone
// deletion.
//
// The index stores and returns integers only. An owning container keeps the
// actual records in parallel arrays and uses the index to narrow a key's hash
// to the few candidate slots worth exact-comparing:
//
//	key := idx.HashString(lookup)
//	var it hashindex.Iterator
//	for v := idx.First(key, &it); v != hashindex.Unused; v = it.Next() {
//	    if v == hashindex.Deleted {
//	        continue
//	    }
//	    if records[v].Name == lookup {
//	        return records[v]
//	    }
//	}
package hashindex

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/dictgo/alloc"
)

// Sentinel slot values returned by First and Next.
const (
	// Unused marks a table slot or chain position that never held a value.
	// During iteration it also signals chain exhaustion.
	Unused int32 = -1
	// Deleted marks a tombstoned entry: removed, but entries further down
	// the chain may still hold live values.
	Deleted int32 = -2
)

// AddResult reports the outcome of Add.
type AddResult int

const (
	// Inserted means the value was stored, either in the table slot or
	// appended to the slot's chain.
	Inserted AddResult = iota
	// AlreadyPresent means the value was already recorded under the key and
	// nothing changed.
	AlreadyPresent
)

type node struct {
	value int32
	next  *node
}

var nodeBytes = int64(unsafe.Sizeof(node{}))

// Index maps hash keys in [0, Size()) to integer slot values.
//
// Collisions chain off the table slot. Every non-empty chain ends in exactly
// one trailing Unused node ready to receive the next collision, and a value
// appears at most once anywhere in a given key's chain. The index is
// single-threaded: any mutating call invalidates outstanding Iterators.
type Index struct {
	table  []int32
	chains []node // chain heads, one per table slot
	mask   uint32
	free   *node // tombstoned nodes spliced out by Add, reused for sentinels
	alloc  alloc.Allocator
}

// New creates an index with at least size table slots, rounded up to the next
// power of two. Larger sizes trade memory for fewer collisions. If a is nil,
// alloc.Heap is used.
func New(a alloc.Allocator, size int) (*Index, error) {
	if a == nil {
		a = alloc.Heap
	}
	if size < 2 {
		panic("hashindex: size must be at least 2")
	}

	tableSize := 1 << bits.Len(uint(size-1))

	table, err := alloc.MakeSlice[int32](a, tableSize)
	if err != nil {
		return nil, err
	}
	chains, err := alloc.MakeSlice[node](a, tableSize)
	if err != nil {
		alloc.FreeSlice(a, table)
		return nil, err
	}
	for i := range table {
		table[i] = Unused
		chains[i].value = Unused
	}

	return &Index{
		table:  table,
		chains: chains,
		mask:   uint32(tableSize - 1),
		alloc:  a,
	}, nil
}

// Size returns the number of table slots.
func (x *Index) Size() int { return len(x.table) }

// HashString hashes s into [0, Size()) with a rolling shift-and-fold
// accumulator. Stable and collision-tolerant, not cryptographic.
func (x *Index) HashString(s string) int32 {
	var hash, high uint32
	for i := 0; i < len(s); i++ {
		hash = (hash << 4) + uint32(s[i])
		if high = hash & 0xF0000000; high != 0 {
			hash ^= high >> 24
		}
		hash &^= high
	}
	return int32(hash & x.mask)
}

// HashInt hashes v into [0, Size()) with a fixed shift-xor-multiply
// avalanche mix.
func (x *Index) HashInt(v int32) int32 {
	u := uint32(v)
	u = ((u >> 16) ^ u) * 0x45d9f3b
	u = ((u >> 16) ^ u) * 0x45d9f3b
	u = (u >> 16) ^ u
	return int32(u & x.mask)
}

// HashPointer hashes a pointer-sized address into [0, Size()). On 64-bit
// platforms the two 32-bit halves are byte-interleaved before mixing so that
// addresses differing only in one half still spread across the table.
func (x *Index) HashPointer(p uintptr) int32 {
	if unsafe.Sizeof(p) == 4 {
		return x.HashInt(int32(uint32(p)))
	}

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(p))
	b[1], b[5] = b[5], b[1]
	b[3], b[7] = b[7], b[3]
	lo := binary.LittleEndian.Uint32(b[0:4])
	hi := binary.LittleEndian.Uint32(b[4:8])

	return x.HashInt(int32(lo &^ hi))
}

func (x *Index) checkKey(key int32) {
	if key < 0 || int(key) >= len(x.table) {
		panic("hashindex: key out of range")
	}
}

// newNode returns a fresh trailing sentinel, reusing a reclaimed node when
// one is available.
func (x *Index) newNode() (*node, error) {
	if n := x.free; n != nil {
		x.free = n.next
		n.value = Unused
		n.next = nil
		return n, nil
	}
	if err := x.alloc.Reserve(nodeBytes); err != nil {
		return nil, err
	}
	return &node{value: Unused}, nil
}

// Add records value under key. A value already recorded under the same key is
// left alone; a key's chain never holds duplicates. On budget exhaustion the
// index is left unchanged.
func (x *Index) Add(key, value int32) (AddResult, error) {
	x.checkKey(key)
	if value < 0 {
		panic("hashindex: negative value")
	}

	if x.table[key] == Unused || x.table[key] == Deleted {
		x.table[key] = value
		return Inserted, nil
	}
	if x.table[key] == value {
		return AlreadyPresent, nil
	}

	// Walk to the trailing sentinel. Tombstoned nodes passed on the way are
	// spliced onto the free list; that is safe because any mutation
	// invalidates outstanding iterators.
	cur := &x.chains[key]
	for {
		for cur.next != nil && cur.next.value == Deleted && cur.next.next != nil {
			reclaimed := cur.next
			cur.next = reclaimed.next
			reclaimed.next = x.free
			x.free = reclaimed
		}
		if cur.value == value {
			return AlreadyPresent, nil
		}
		if cur.next == nil {
			break
		}
		cur = cur.next
	}

	// cur is the trailing sentinel. Acquire its replacement before writing
	// anything, so a failed allocation changes nothing.
	sentinel, err := x.newNode()
	if err != nil {
		return 0, err
	}
	cur.value = value
	cur.next = sentinel

	return Inserted, nil
}

// RemoveFirst tombstones the table slot for key. Chain entries are untouched
// and remain reachable through Next; the slot may be reused by a later Add.
func (x *Index) RemoveFirst(key int32) {
	x.checkKey(key)
	x.table[key] = Deleted
}

// Iterator walks one key's chain. Obtain a position with First, then advance
// with Next. Any mutation of the index invalidates the iterator.
type Iterator struct {
	cur  *node
	prev *node
}

// First returns the table slot's value for key: a live value, Unused (the
// slot and its chain are empty) or Deleted (the slot is tombstoned but the
// chain may still hold live values). When it is non-nil, the iterator is
// positioned at the key's chain head. Pass nil when only the first entry is
// wanted.
func (x *Index) First(key int32, it *Iterator) int32 {
	x.checkKey(key)
	if it != nil {
		it.cur = &x.chains[key]
		it.prev = nil
	}
	return x.table[key]
}

// Next returns the next live value in the chain, skipping tombstones, or
// Unused once the chain is exhausted.
func (it *Iterator) Next() int32 {
	for it.cur != nil && it.cur.value == Deleted {
		it.cur = it.cur.next
	}
	if it.cur == nil {
		return Unused
	}
	it.prev = it.cur
	it.cur = it.cur.next
	return it.prev.value
}

// RemoveCurrent tombstones the chain entry most recently returned by Next.
// It does not advance the iterator and does not reclaim the node; a later
// Add on the same key will. Calling it before the first Next is a caller bug.
func (it *Iterator) RemoveCurrent() {
	if it.prev == nil {
		panic("hashindex: RemoveCurrent before Next")
	}
	it.prev.value = Deleted
}

// Free returns the table, the chain heads and every chain node to the
// allocator. The index must not be used afterwards.
func (x *Index) Free() {
	var nodes int64
	for i := range x.chains {
		for n := x.chains[i].next; n != nil; n = n.next {
			nodes++
		}
	}
	for n := x.free; n != nil; n = n.next {
		nodes++
	}
	x.alloc.Release(nodes * nodeBytes)

	alloc.FreeSlice(x.alloc, x.table)
	alloc.FreeSlice(x.alloc, x.chains)
	x.table = nil
	x.chains = nil
	x.free = nil
	x.mask = 0
}
