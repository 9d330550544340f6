package dictgo_test

import (
	"fmt"

	"github.com/hupe1980/dictgo"
	"github.com/hupe1980/dictgo/hashindex"
	"github.com/hupe1980/dictgo/variant"
)

func ExampleDict() {
	d, err := dictgo.New(128, 32)
	if err != nil {
		panic(err)
	}
	defer d.Free()

	_ = d.Set("mr.key", "mr.value")

	fmt.Println(d.Get("mr.key", "<missing>"))
	fmt.Println(d.Get("other", "<missing>"))
	// Output:
	// mr.value
	// <missing>
}

func ExampleDict_SetValue() {
	d, err := dictgo.New(16, 8)
	if err != nil {
		panic(err)
	}
	defer d.Free()

	v := variant.Int32(42)
	_ = d.SetValue("answer", &v)

	if got, ok := d.GetValue("answer"); ok && got.Kind() == variant.KindInt32 {
		fmt.Println(got.Int32())
	}
	// Output:
	// 42
}

// Example_pointerBookkeeping shows the pattern a bookkeeping client such as
// an allocation tracker uses: resolve opaque addresses to rows in a
// caller-owned table via pointer-keyed index lookups.
func Example_pointerBookkeeping() {
	idx, err := hashindex.New(nil, 64)
	if err != nil {
		panic(err)
	}
	defer idx.Free()

	type allocation struct {
		addr uintptr
		size int
	}
	rows := []allocation{
		{addr: 0xdead000, size: 64},
		{addr: 0xbeef000, size: 128},
	}

	for i, a := range rows {
		_, _ = idx.Add(idx.HashPointer(a.addr), int32(i))
	}

	key := idx.HashPointer(0xbeef000)
	var it hashindex.Iterator
	for v := idx.First(key, &it); v != hashindex.Unused; v = it.Next() {
		if v == hashindex.Deleted {
			continue
		}
		if rows[v].addr == 0xbeef000 {
			fmt.Println(rows[v].size)
			break
		}
	}
	// Output:
	// 128
}
