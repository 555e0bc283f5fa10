package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("SparseChangesElementType", func(t *testing.T) {
		v := New[float64]()
		v.Append(1, 1.4)
		v.Append(5, 2.6)
		v.Append(9, -3.5)

		out := Map(v, func(_ int, x float64) int {
			if x < 0 {
				return -1
			}
			return 1
		})

		assert.Equal(t, KindSparse, out.Kind())
		assert.Equal(t, 3, out.Size())
		assert.Equal(t, 1, out.At(1))
		assert.Equal(t, 1, out.At(5))
		assert.Equal(t, -1, out.At(9))
		assert.Equal(t, 0, out.At(2), "index set is preserved exactly")
	})

	t.Run("TransformSeesIndices", func(t *testing.T) {
		v := New[int]()
		v.Append(3, 100)
		v.Append(7, 100)

		out := Map(v, func(ix int, _ int) int { return ix })
		assert.Equal(t, 3, out.At(3))
		assert.Equal(t, 7, out.At(7))
	})

	t.Run("Dense", func(t *testing.T) {
		v := FromSlice([]float64{1, 2, 3})
		out := Map(v, func(_ int, x float64) float64 { return x * x })
		assert.Equal(t, KindDense, out.Kind())
		assert.Equal(t, []float64{1, 4, 9}, out.val)
	})

	t.Run("LargeParallel", func(t *testing.T) {
		v := New[int]()
		for i := 0; i < 10000; i++ {
			v.Append(i*2, i)
		}
		out := Map(v, func(_ int, x int) int { return x + 1 })
		require.Equal(t, 10000, out.Size())
		for i := 0; i < 10000; i++ {
			require.Equal(t, i+1, out.At(i*2))
		}
	})

	t.Run("SourceUntouched", func(t *testing.T) {
		v := New[int]()
		v.Append(1, 5)
		_ = Map(v, func(_ int, x int) int { return 0 })
		assert.Equal(t, 5, v.At(1))
	})
}

func TestReduce(t *testing.T) {
	t.Run("MinArgLeftmostTieBreak", func(t *testing.T) {
		v := New[float64]()
		v.Append(2, 4)
		v.Append(5, 1)
		v.Append(8, 1) // exact tie with index 5
		v.Append(9, 3)

		got := v.Reduce(MinEntry, Entry[float64]{Index: -1, Value: 1e30})
		assert.Equal(t, 5, got.Index, "earlier entry wins exact ties")
		assert.Equal(t, 1.0, got.Value)
	})

	t.Run("MaxArg", func(t *testing.T) {
		v := New[float64]()
		v.Append(1, -4)
		v.Append(3, 7)
		v.Append(6, 7)

		got := v.Reduce(MaxEntry, Entry[float64]{Index: -1, Value: -1e30})
		assert.Equal(t, 3, got.Index)
		assert.Equal(t, 7.0, got.Value)
	})

	t.Run("EmptyReturnsInitial", func(t *testing.T) {
		v := New[float64]()
		initial := Entry[float64]{Index: -1, Value: 42}
		assert.Equal(t, initial, v.Reduce(MinEntry, initial))
	})

	t.Run("Dense", func(t *testing.T) {
		v := FromSlice([]float64{3, 1, 2})
		got := v.Reduce(MinEntry, Entry[float64]{Index: -1, Value: 1e30})
		assert.Equal(t, 1, got.Index)
		assert.Equal(t, 1.0, got.Value)
	})

	t.Run("CustomCombineIsStrictLeftToRight", func(t *testing.T) {
		v := New[int]()
		v.Append(1, 10)
		v.Append(2, 20)
		v.Append(3, 30)

		var order []int
		v.Reduce(func(acc, e Entry[int]) Entry[int] {
			order = append(order, e.Index)
			return acc
		}, Entry[int]{})
		assert.Equal(t, []int{1, 2, 3}, order)
	})
}
