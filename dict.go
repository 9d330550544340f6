package dictgo

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/dictgo/alloc"
	"github.com/hupe1980/dictgo/hashindex"
	"github.com/hupe1980/dictgo/internal/conv"
	"github.com/hupe1980/dictgo/variant"
)

const (
	// keyBytes is the fixed per-slot key width: 8 significant characters
	// plus a terminator. Keys sharing their first 8 characters are
	// indistinguishable; this is a documented identity limit, not an error.
	keyBytes = 9

	// growthQuantum is the fixed number of slots added when the parallel
	// arrays are full. Deliberately additive, unlike seq's multiplicative
	// policy: the dictionary trades memory for simplicity.
	growthQuantum = 12
)

// Dict is a string-keyed store of variant values.
//
// Keys and values live in parallel arrays; an embedded hash index, keyed by
// the untruncated key's hash, narrows a lookup to the candidate slots worth
// exact-comparing. The dictionary is single-threaded; pointers returned by
// GetValue are invalidated by the next mutating call.
type Dict struct {
	size    int // capacity of the parallel arrays
	pairs   int // high-water mark of slots ever used, tombstoned included
	keys    []byte
	values  []variant.Variant
	index   *hashindex.Index
	reclaim *bitset.BitSet // tombstoned slots below the high-water mark

	caseSensitive bool
	alloc         alloc.Allocator
	logger        *Logger
}

// New creates a dictionary with capacity slots. chainHint trades hash-table
// memory for collisions and must not exceed capacity; the embedded index is
// sized from capacity.
func New(capacity, chainHint int, optFns ...Option) (*Dict, error) {
	if capacity < 2 {
		panic("dictgo: capacity must be at least 2")
	}
	if chainHint > capacity {
		panic("dictgo: chain hint exceeds capacity")
	}

	o := options{
		allocator: alloc.Heap,
		logger:    NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	idx, err := hashindex.New(o.allocator, capacity)
	if err != nil {
		return nil, err
	}
	keys, err := alloc.MakeSlice[byte](o.allocator, capacity*keyBytes)
	if err != nil {
		idx.Free()
		return nil, err
	}
	values, err := alloc.MakeSlice[variant.Variant](o.allocator, capacity)
	if err != nil {
		alloc.FreeSlice(o.allocator, keys)
		idx.Free()
		return nil, err
	}

	return &Dict{
		size:          capacity,
		keys:          keys,
		values:        values,
		index:         idx,
		reclaim:       bitset.New(uint(capacity)),
		caseSensitive: o.caseSensitive,
		alloc:         o.allocator,
		logger:        o.logger,
	}, nil
}

// foldByte lowercases ASCII letters.
func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// slotKey returns the fixed-width key bytes of slot.
func (d *Dict) slotKey(slot int) []byte {
	off := slot * keyBytes
	return d.keys[off : off+keyBytes]
}

// writeKey stores key truncated to the slot's fixed width.
func (d *Dict) writeKey(slot int, key string) {
	buf := d.slotKey(slot)
	clear(buf)
	copy(buf[:keyBytes-1], key)
}

// keyEqual compares a slot's stored key bytes with an already-truncated
// lookup key.
func (d *Dict) keyEqual(stored, lookup []byte) bool {
	if d.caseSensitive {
		return bytes.Equal(stored, lookup)
	}
	for i := range stored {
		if foldByte(stored[i]) != foldByte(lookup[i]) {
			return false
		}
	}
	return true
}

// findSlot returns the slot holding key, or -1 when no live entry matches,
// together with the key's hash.
func (d *Dict) findSlot(key string) (int, int32) {
	if key == "" {
		panic("dictgo: empty key")
	}

	hash := d.index.HashString(key)

	var trunc [keyBytes]byte
	copy(trunc[:keyBytes-1], key)

	var it hashindex.Iterator
	for v := d.index.First(hash, &it); v != hashindex.Unused; v = it.Next() {
		if v == hashindex.Deleted {
			continue
		}
		slot := int(v)
		if d.keyEqual(d.slotKey(slot), trunc[:]) {
			return slot, hash
		}
	}

	return -1, hash
}

// ownedBytes reports the allocator charge for v's payload: the length of an
// owned string, zero for everything else.
func ownedBytes(v *variant.Variant) int64 {
	if v.Kind() == variant.KindString && !v.Borrowed() {
		return int64(len(v.StringValue()))
	}
	return 0
}

// grow extends the parallel arrays to newSize slots. Newly available value
// slots start void. On failure the dictionary is unchanged.
func (d *Dict) grow(newSize int) error {
	keys, err := alloc.GrowSlice(d.alloc, d.keys, newSize*keyBytes)
	if err != nil {
		return err
	}
	values, err := alloc.GrowSlice(d.alloc, d.values, newSize)
	if err != nil {
		// Refund the key growth; d.keys still points at the old array.
		d.alloc.Release(int64(newSize*keyBytes - cap(d.keys)))
		return err
	}

	d.logger.LogGrow(d.size, newSize, d.pairs)

	d.keys = keys[:newSize*keyBytes]
	d.values = values[:newSize]
	d.size = newSize

	return nil
}

// takeSlot picks the lowest tombstoned slot, or extends the high-water mark.
func (d *Dict) takeSlot() (slot int, reclaimed bool) {
	if i, ok := d.reclaim.NextSet(0); ok {
		d.reclaim.Clear(i)
		d.logger.LogSlotReuse(int(i))
		return int(i), true
	}
	d.pairs++
	return d.pairs - 1, false
}

// Set stores value under key as an owned string. See SetValue for the full
// insertion contract.
func (d *Dict) Set(key, value string) error {
	v := variant.String(value)
	return d.SetValue(key, &v)
}

// SetValue stores a copy of value under key, overwriting a live entry whose
// truncated key matches. The operation either fully succeeds or leaves the
// dictionary observably unchanged; budget exhaustion is reported as
// ErrOutOfMemory.
func (d *Dict) SetValue(key string, value *variant.Variant) error {
	if value == nil {
		panic("dictgo: nil value")
	}

	slot, hash := d.findSlot(key)

	if slot >= 0 {
		if err := d.alloc.Reserve(ownedBytes(value)); err != nil {
			return err
		}
		d.alloc.Release(ownedBytes(&d.values[slot]))
		d.values[slot].CopyFrom(value)
		d.writeKey(slot, key)
		return nil
	}

	if err := d.alloc.Reserve(ownedBytes(value)); err != nil {
		return err
	}
	if d.pairs == d.size {
		if err := d.grow(d.size + growthQuantum); err != nil {
			d.alloc.Release(ownedBytes(value))
			return err
		}
	}

	target, reclaimed := d.takeSlot()
	slot32, err := conv.IntToInt32(target)
	if err != nil {
		panic(fmt.Sprintf("dictgo: slot index: %v", err))
	}

	if _, err := d.index.Add(hash, slot32); err != nil {
		if reclaimed {
			d.reclaim.Set(mustUint(target))
		} else {
			d.pairs--
		}
		d.alloc.Release(ownedBytes(value))
		return err
	}

	d.writeKey(target, key)
	d.values[target].CopyFrom(value)

	return nil
}

// Get returns the string stored under key, or fallback when no live entry
// matches. It panics when the stored value is not a string; callers mixing
// kinds should use GetValue and check Kind first.
func (d *Dict) Get(key, fallback string) string {
	slot, _ := d.findSlot(key)
	if slot < 0 {
		return fallback
	}
	return d.values[slot].StringValue()
}

// GetValue returns a borrowed pointer to the value stored under key. The
// pointer is valid only until the next mutating call on the dictionary.
func (d *Dict) GetValue(key string) (*variant.Variant, bool) {
	slot, _ := d.findSlot(key)
	if slot < 0 {
		return nil, false
	}
	return &d.values[slot], true
}

// Delete removes the entry for key and reports whether one was removed. The
// slot is tombstoned for reuse and the hash index entry is marked deleted;
// backing memory is retained.
func (d *Dict) Delete(key string) bool {
	slot, hash := d.findSlot(key)
	if slot < 0 {
		return false
	}

	var it hashindex.Iterator
	if v := d.index.First(hash, &it); int(v) == slot {
		d.index.RemoveFirst(hash)
	} else {
		for v := it.Next(); v != hashindex.Unused; v = it.Next() {
			if int(v) == slot {
				it.RemoveCurrent()
				break
			}
		}
	}

	d.alloc.Release(ownedBytes(&d.values[slot]))
	d.values[slot].Clear()
	clear(d.slotKey(slot))
	d.reclaim.Set(mustUint(slot))

	return true
}

func mustUint(v int) uint {
	u, err := conv.IntToUint(v)
	if err != nil {
		panic(fmt.Sprintf("dictgo: slot index: %v", err))
	}
	return u
}

// Len returns the number of live entries.
func (d *Dict) Len() int { return d.pairs - int(d.reclaim.Count()) }

// Pairs returns the high-water mark of slots ever used, tombstoned included.
func (d *Dict) Pairs() int { return d.pairs }

// Cap returns the capacity of the parallel arrays.
func (d *Dict) Cap() int { return d.size }

// Free releases every owned value, the parallel arrays and the embedded
// index back to the allocator. The dictionary must not be used afterwards.
func (d *Dict) Free() {
	for i := 0; i < d.pairs; i++ {
		d.alloc.Release(ownedBytes(&d.values[i]))
		d.values[i].Clear()
	}
	alloc.FreeSlice(d.alloc, d.keys)
	alloc.FreeSlice(d.alloc, d.values)
	d.index.Free()

	d.keys = nil
	d.values = nil
	d.size = 0
	d.pairs = 0
	d.reclaim.ClearAll()
}
