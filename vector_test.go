package tableau

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sparseOf[T Number](entries map[int]T, indices []int, opts ...Option) *Vector[T] {
	v := New[T](opts...)
	for _, ix := range indices {
		v.Append(ix, entries[ix])
	}
	return v
}

func sortedKeys[T Number](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func TestVectorAppendAtRoundTrip(t *testing.T) {
	v := New[float64]()
	v.Append(3, 1.5)
	v.Append(7, -2.0)
	v.Append(42, 0.25)

	assert.Equal(t, 3, v.Size())
	assert.Equal(t, KindSparse, v.Kind())
	assert.Equal(t, 1.5, v.At(3))
	assert.Equal(t, -2.0, v.At(7))
	assert.Equal(t, 0.25, v.At(42))

	// Never-appended indices return the additive identity.
	assert.Equal(t, 0.0, v.At(0))
	assert.Equal(t, 0.0, v.At(5))
	assert.Equal(t, 0.0, v.At(1000))
}

func TestVectorSet(t *testing.T) {
	t.Run("SparseUpdatesPresentOnly", func(t *testing.T) {
		v := New[int]()
		v.Append(2, 10)
		v.Append(5, 20)

		v.Set(2, 11)
		assert.Equal(t, 11, v.At(2))

		// Set on an absent index is a silent no-op, never an insertion.
		v.Set(3, 99)
		assert.Equal(t, 0, v.At(3))
		assert.Equal(t, 2, v.Size())
	})

	t.Run("DenseWritesInBounds", func(t *testing.T) {
		v := NewDense[int](4)
		v.Set(0, 7)
		v.Set(3, 8)
		assert.Equal(t, 7, v.At(0))
		assert.Equal(t, 8, v.At(3))

		assert.Panics(t, func() { v.Set(4, 1) })
		assert.Panics(t, func() { v.At(4) })
		assert.Panics(t, func() { v.At(-1) })
	})
}

func TestVectorDenseAppendIsBoundedWrite(t *testing.T) {
	v := NewDense[float64](3)
	v.Append(1, 2.5)
	assert.Equal(t, 2.5, v.At(1))
	assert.Equal(t, 3, v.Size(), "dense size is fixed")

	assert.Panics(t, func() { v.Append(3, 1.0) })
}

func TestVectorPop(t *testing.T) {
	tests := []struct {
		name     string
		expected []int
		wantSize int
		wantLast int
	}{
		{"Unguarded", nil, 2, 5},
		{"GuardMatches", []int{9}, 2, 5},
		{"GuardMismatch", []int{5}, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New[int]()
			v.Append(2, 1)
			v.Append(5, 2)
			v.Append(9, 3)

			v.Pop(tt.expected...)
			require.Equal(t, tt.wantSize, v.Size())
			assert.NotZero(t, v.At(tt.wantLast))
		})
	}

	t.Run("EmptyNoop", func(t *testing.T) {
		v := New[int]()
		v.Pop()
		v.Pop(3)
		assert.Equal(t, 0, v.Size())
	})

	t.Run("DensePanics", func(t *testing.T) {
		v := NewDense[int](2)
		assert.Panics(t, func() { v.Pop() })
	})
}

func TestVectorScale(t *testing.T) {
	t.Run("Sparse", func(t *testing.T) {
		v := New[float64]()
		v.Append(1, 2)
		v.Append(4, -3)
		v.Scale(0.5)
		assert.Equal(t, 1.0, v.At(1))
		assert.Equal(t, -1.5, v.At(4))
		assert.Equal(t, 2, v.Size(), "scale never changes the entry set")
	})

	t.Run("Dense", func(t *testing.T) {
		v := FromSlice([]float64{1, 0, -2})
		v.Scale(3)
		assert.Equal(t, []float64{3, 0, -6}, v.val)
	})
}

func TestVectorClone(t *testing.T) {
	v := New[float64]()
	v.Append(1, 2)
	v.Append(3, 4)

	c := v.Clone()
	c.Set(1, 99)
	c.Append(5, 6)

	assert.Equal(t, 2.0, v.At(1), "clone mutation must not leak back")
	assert.Equal(t, 2, v.Size())
	assert.Equal(t, 3, c.Size())
	assert.Equal(t, v.Kind(), c.Kind())

	d := FromSlice([]int{1, 2, 3})
	dc := d.Clone()
	dc.Set(0, 9)
	assert.Equal(t, 1, d.At(0))
	assert.Equal(t, KindDense, dc.Kind())
}

func TestVectorClear(t *testing.T) {
	v := New[int]()
	v.Append(1, 2)
	v.Clear()
	assert.Equal(t, 0, v.Size())
	assert.Equal(t, 0, v.At(1))

	d := FromSlice([]int{1, 2})
	d.Clear()
	assert.Equal(t, 2, d.Size(), "dense size stays fixed")
	assert.Equal(t, 0, d.At(0))
	assert.Equal(t, 0, d.At(1))
}

func TestVectorAll(t *testing.T) {
	t.Run("SparseYieldsPopulatedInOrder", func(t *testing.T) {
		v := New[float64]()
		v.Append(2, 1)
		v.Append(7, 2)
		v.Append(11, 3)

		var gotIdx []int
		var gotVal []float64
		for ix, x := range v.All() {
			gotIdx = append(gotIdx, ix)
			gotVal = append(gotVal, x)
		}
		assert.Equal(t, []int{2, 7, 11}, gotIdx)
		assert.Equal(t, []float64{1, 2, 3}, gotVal)
	})

	t.Run("DenseYieldsEveryPosition", func(t *testing.T) {
		v := FromSlice([]float64{5, 0, 7})
		var gotIdx []int
		for ix := range v.All() {
			gotIdx = append(gotIdx, ix)
		}
		assert.Equal(t, []int{0, 1, 2}, gotIdx)
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		v := FromSlice([]float64{1, 2, 3})
		count := 0
		for range v.All() {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestVectorValidate(t *testing.T) {
	v := New[int]()
	v.Append(1, 1)
	v.Append(5, 2)
	require.NoError(t, v.Validate())

	// Out-of-order append breaks the invariant; Validate must catch it.
	v.Append(3, 3)
	assert.Error(t, v.Validate())

	d := NewDense[int](3)
	assert.NoError(t, d.Validate())
}

func TestNewWithCapacity(t *testing.T) {
	v := NewWithCapacity[float64](16)
	assert.Equal(t, 0, v.Size())
	for i := 0; i < 32; i++ { // growth past the initial capacity
		v.Append(i, float64(i+1))
	}
	assert.Equal(t, 32, v.Size())
	assert.Equal(t, 32.0, v.At(31))

	assert.Panics(t, func() { NewWithCapacity[int](-1) })
	assert.Panics(t, func() { NewDense[int](-1) })
}
