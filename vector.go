package tableau

import (
	"iter"
	"math"
	"slices"
)

// Number is the element constraint for vectors and tableaus. The only
// requirements placed on an element type are an additive identity, addition,
// multiplication and an (optionally tolerance-based) zero test.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Kind is the storage discipline of a Vector.
type Kind uint8

const (
	// KindSparse stores ascending, unique (index, value) pairs. Absent
	// indices implicitly hold the additive identity.
	KindSparse Kind = iota
	// KindDense stores every position 0..size-1 in a flat array.
	KindDense
)

func (k Kind) String() string {
	switch k {
	case KindSparse:
		return "sparse"
	case KindDense:
		return "dense"
	default:
		return "unknown"
	}
}

// Entry is a populated (index, value) pair, as seen by Reduce combiners.
type Entry[T Number] struct {
	Index int
	Value T
}

// Vector is a one-dimensional numeric container - the abstraction of a row
// or column in a simplex tableau.
//
// A sparse Vector keeps its indices strictly ascending and, after any
// arithmetic, free of stored zeros. Append does not enforce the ordering;
// that is the caller's responsibility, exactly like pushing onto the end of
// a row while scattering a column.
//
// A Vector is exclusively owned by whichever container holds it. Mutating
// arithmetic operates on the receiver's own backing storage and never aliases
// an operand.
type Vector[T Number] struct {
	kind Kind
	idx  []int // sparse only, ascending
	val  []T
	eps  float64
}

// New creates an empty sparse vector.
func New[T Number](opts ...Option) *Vector[T] {
	o := applyOptions(opts)
	return &Vector[T]{kind: KindSparse, eps: o.eps}
}

// NewWithCapacity creates an empty sparse vector with room for n entries.
func NewWithCapacity[T Number](n int, opts ...Option) *Vector[T] {
	if n < 0 {
		panic(panicNegativeDimension)
	}
	o := applyOptions(opts)
	return &Vector[T]{
		kind: KindSparse,
		idx:  make([]int, 0, n),
		val:  make([]T, 0, n),
		eps:  o.eps,
	}
}

// NewDense creates a dense vector of the given size with every position set
// to the additive identity. The size of a dense vector is fixed for its
// lifetime.
func NewDense[T Number](size int, opts ...Option) *Vector[T] {
	if size < 0 {
		panic(panicNegativeDimension)
	}
	o := applyOptions(opts)
	return &Vector[T]{kind: KindDense, val: make([]T, size), eps: o.eps}
}

// FromSlice creates a dense vector backed by a copy of values.
func FromSlice[T Number](values []T, opts ...Option) *Vector[T] {
	o := applyOptions(opts)
	return &Vector[T]{kind: KindDense, val: slices.Clone(values), eps: o.eps}
}

// Clone returns a deep copy preserving the storage discipline.
func (v *Vector[T]) Clone() *Vector[T] {
	return &Vector[T]{
		kind: v.kind,
		idx:  slices.Clone(v.idx),
		val:  slices.Clone(v.val),
		eps:  v.eps,
	}
}

// Kind returns the storage discipline.
func (v *Vector[T]) Kind() Kind { return v.kind }

// Size returns the count of populated positions: the entry count for sparse
// storage, the fixed length for dense storage.
func (v *Vector[T]) Size() int {
	if v.kind == KindDense {
		return len(v.val)
	}
	return len(v.idx)
}

// isZero is the epsilon-aware zero test applied when arithmetic decides
// whether a merged entry survives.
func (v *Vector[T]) isZero(x T) bool {
	if v.eps == 0 {
		return x == 0
	}
	return math.Abs(float64(x)) <= v.eps
}

// search returns the position of index in a sparse vector, or -1.
func (v *Vector[T]) search(index int) int {
	pos, ok := slices.BinarySearch(v.idx, index)
	if !ok {
		return -1
	}
	return pos
}

// At returns the value at index. Sparse lookups return the additive identity
// for absent indices; dense lookups panic when index is out of bounds.
func (v *Vector[T]) At(index int) T {
	if v.kind == KindDense {
		if index < 0 || index >= len(v.val) {
			panic(panicIndexOutOfRange)
		}
		return v.val[index]
	}
	if pos := v.search(index); pos >= 0 {
		return v.val[pos]
	}
	var zero T
	return zero
}

// Set updates the value at index.
//
// On sparse storage Set only updates an index that is already present; it
// never grows the vector. Callers adding a new index must use Append. On
// dense storage index must be in bounds.
func (v *Vector[T]) Set(index int, value T) {
	if v.kind == KindDense {
		if index < 0 || index >= len(v.val) {
			panic(panicIndexOutOfRange)
		}
		v.val[index] = value
		return
	}
	if pos := v.search(index); pos >= 0 {
		v.val[pos] = value
	}
}

// Append pushes a new (index, value) pair at the logical end of a sparse
// vector. The caller is responsible for keeping indices ascending; the
// structure never re-sorts.
//
// On dense storage Append acts as a bounds-checked write, not a growth
// operation.
func (v *Vector[T]) Append(index int, value T) {
	if v.kind == KindDense {
		if index < 0 || index >= len(v.val) {
			panic(panicIndexOutOfRange)
		}
		v.val[index] = value
		return
	}
	v.idx = append(v.idx, index)
	v.val = append(v.val, value)
}

// Pop removes the last entry of a sparse vector. When expectedLast is given,
// the entry is removed only if its index matches - otherwise Pop is a no-op.
// This supports safe "undo of last append" when retracting a column.
func (v *Vector[T]) Pop(expectedLast ...int) {
	if v.kind != KindSparse {
		panic(panicSparseOnly)
	}
	n := len(v.idx)
	if n == 0 {
		return
	}
	if len(expectedLast) > 0 && v.idx[n-1] != expectedLast[0] {
		return
	}
	v.idx = v.idx[:n-1]
	v.val = v.val[:n-1]
}

// Clear resets a sparse vector to empty, keeping its capacity. On dense
// storage every position is reset to the additive identity; the size stays
// fixed.
func (v *Vector[T]) Clear() {
	if v.kind == KindDense {
		clear(v.val)
		return
	}
	v.idx = v.idx[:0]
	v.val = v.val[:0]
}

// Scale multiplies every populated value by factor, in place. It neither
// introduces nor removes entries.
func (v *Vector[T]) Scale(factor T) {
	for i := range v.val {
		v.val[i] *= factor
	}
}

// All returns a forward-only view over populated entries in index order.
// Dense vectors yield every position, including zeros.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.kind == KindDense {
			for i, x := range v.val {
				if !yield(i, x) {
					return
				}
			}
			return
		}
		for p, ix := range v.idx {
			if !yield(ix, v.val[p]) {
				return
			}
		}
	}
}

// entryAt returns the pth populated entry.
func (v *Vector[T]) entryAt(p int) (int, T) {
	if v.kind == KindDense {
		return p, v.val[p]
	}
	return v.idx[p], v.val[p]
}

// Validate checks the representation invariant of sparse storage: strictly
// ascending, unique indices. It is a diagnostic helper; the invariant is
// maintained by construction. Stored zeros are not flagged here - Append and
// Scale may legally produce them; only arithmetic results are zero-free.
func (v *Vector[T]) Validate() error {
	if v.kind == KindDense {
		return nil
	}
	if len(v.idx) != len(v.val) {
		return errInvariant("sparse index/value length skew", len(v.idx), len(v.val))
	}
	for p := 1; p < len(v.idx); p++ {
		if v.idx[p] <= v.idx[p-1] {
			return errInvariant("sparse indices not strictly ascending", v.idx[p-1], v.idx[p])
		}
	}
	return nil
}
