package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapNeverFails(t *testing.T) {
	require.NoError(t, Heap.Reserve(1<<40))
	Heap.Release(1 << 40)
	require.NoError(t, Heap.Reserve(0))
}

func TestLimitedBudget(t *testing.T) {
	a := Limited(100)

	require.NoError(t, a.Reserve(60))
	assert.Equal(t, int64(60), a.Used())

	err := a.Reserve(50)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(60), a.Used())

	a.Release(60)
	require.NoError(t, a.Reserve(100))
	assert.Equal(t, int64(100), a.Used())
}

func TestLimitedZeroReservation(t *testing.T) {
	a := Limited(1)
	require.NoError(t, a.Reserve(0))
	a.Release(0)
	assert.Equal(t, int64(0), a.Used())
}

func TestMakeSlice(t *testing.T) {
	a := Limited(16)

	s, err := MakeSlice[int32](a, 4) // 16 bytes
	require.NoError(t, err)
	assert.Len(t, s, 4)
	assert.Equal(t, int64(16), a.Used())

	_, err = MakeSlice[int32](a, 1)
	require.ErrorIs(t, err, ErrOutOfMemory)

	FreeSlice(a, s)
	assert.Equal(t, int64(0), a.Used())

	_, err = MakeSlice[int32](a, 4)
	require.NoError(t, err)
}

func TestGrowSlicePreservesContents(t *testing.T) {
	a := Limited(1024)

	s, err := MakeSlice[int](a, 2)
	require.NoError(t, err)
	s[0], s[1] = 1, 2

	grown, err := GrowSlice(a, s, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, len(grown))
	assert.Equal(t, 5, cap(grown))
	assert.Equal(t, []int{1, 2}, grown)

	// Only the delta was charged.
	assert.Equal(t, 5*SizeOf[int](), a.Used())
}

func TestGrowSliceOutOfMemoryLeavesOldSlice(t *testing.T) {
	a := Limited(3 * SizeOf[int64]())

	s, err := MakeSlice[int64](a, 2)
	require.NoError(t, err)
	s[0], s[1] = 7, 8

	_, err = GrowSlice(a, s, 8)
	require.ErrorIs(t, err, ErrOutOfMemory)

	// The old slice is still valid and untouched.
	assert.Equal(t, []int64{7, 8}, s)
	assert.Equal(t, 2*SizeOf[int64](), a.Used())
}
