package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dictgo/alloc"
)

func TestSeqAppend(t *testing.T) {
	s, err := New[int](nil, 3)
	require.NoError(t, err)
	defer s.Free()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 3, s.Cap())

	prevCap := s.Cap()
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Append(i))
		assert.Equal(t, i, s.Last())
		assert.Equal(t, i+1, s.Len())
		assert.GreaterOrEqual(t, s.Cap(), s.Len())
		assert.GreaterOrEqual(t, s.Cap(), prevCap)
		prevCap = s.Cap()
	}

	for i, v := range s.Elems() {
		assert.Equal(t, i, v)
	}
}

func TestSeqGrowthPolicy(t *testing.T) {
	s, err := New[byte](nil, 4)
	require.NoError(t, err)
	defer s.Free()

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Append(byte(i)))
	}
	assert.Equal(t, 4, s.Cap())

	// 4 -> max(5, 4*3/2) = 6
	require.NoError(t, s.Append(4))
	assert.Equal(t, 6, s.Cap())

	require.NoError(t, s.Append(5))
	assert.Equal(t, 6, s.Cap())

	// 6 -> max(7, 6*3/2) = 9
	require.NoError(t, s.Append(6))
	assert.Equal(t, 9, s.Cap())
}

func TestSeqReserve(t *testing.T) {
	s, err := New[int](nil, 2)
	require.NoError(t, err)
	defer s.Free()

	require.NoError(t, s.Append(1))
	require.NoError(t, s.Reserve(10))
	assert.Equal(t, 1, s.Len())
	assert.GreaterOrEqual(t, s.Cap(), 11)

	// The reserved room absorbs the next 10 appends without relocation.
	capBefore := s.Cap()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Append(i))
	}
	assert.Equal(t, capBefore, s.Cap())

	// Reserving already-available room is a no-op.
	require.NoError(t, s.Reserve(0))
	assert.Equal(t, capBefore, s.Cap())
}

func TestSeqOutOfMemory(t *testing.T) {
	a := alloc.Limited(8 * alloc.SizeOf[int64]())

	s, err := New[int64](a, 4)
	require.NoError(t, err)

	for i := int64(0); i < 4; i++ {
		require.NoError(t, s.Append(i))
	}

	// 4 -> 6 fits the budget (48 of 64 bytes).
	require.NoError(t, s.Append(4))
	require.NoError(t, s.Append(5))

	// 6 -> 9 would need 72 bytes; the sequence must be left intact.
	err = s.Append(6)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 6, s.Cap())
	assert.Equal(t, int64(5), s.Last())

	s.Free()
	assert.Equal(t, int64(0), a.Used())
}

func TestSeqLastPanicsWhenEmpty(t *testing.T) {
	s, err := New[int](nil, 1)
	require.NoError(t, err)
	defer s.Free()

	assert.Panics(t, func() { s.Last() })
}

func TestSeqFreeAndReuse(t *testing.T) {
	s, err := New[int](nil, 4)
	require.NoError(t, err)

	require.NoError(t, s.Append(10))
	s.Free()
	assert.Equal(t, 0, s.Len())

	// A freed sequence behaves like an empty one.
	require.NoError(t, s.Append(20))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 20, s.Last())
	s.Free()
}
