package tableau

// Add accumulates other into the receiver, element-wise. Equivalent to
// AddScaled(other, 1).
func (v *Vector[T]) Add(other *Vector[T]) {
	v.AddScaled(other, 1)
}

// AddScaled accumulates factor*other into the receiver, element-wise.
//
// Semantics per operand combination:
//
//   - sparse += sparse: linear merge of the two ascending index sequences.
//     Matching indices sum; an entry survives only if the sum passes the
//     receiver's zero test. The result stays ascending and zero-free.
//   - dense += dense: sizes must match exactly; position-wise sum with no
//     zero elimination.
//   - sparse += dense: the receiver materializes as dense at the dense
//     operand's size and the sparse entries are scattered into the copy.
//     Every sparse index must be strictly less than the dense size.
//   - dense += sparse: sparse entries are scattered into the receiver, which
//     stays dense. Same bound contract as above.
//
// AddScaled mutates the receiver in place and may change its storage
// discipline from sparse to dense.
func (v *Vector[T]) AddScaled(other *Vector[T], factor T) {
	switch {
	case v.kind == KindSparse && other.kind == KindSparse:
		v.addSparseSparse(other, factor)
	case v.kind == KindDense && other.kind == KindDense:
		if len(v.val) != len(other.val) {
			panic(panicDenseSizeMismatch)
		}
		for i := range v.val {
			v.val[i] += factor * other.val[i]
		}
	case v.kind == KindSparse: // sparse += dense
		dense := make([]T, len(other.val))
		for i, x := range other.val {
			dense[i] = factor * x
		}
		for p, ix := range v.idx {
			if ix < 0 || ix >= len(dense) {
				panic(panicSparseIndexTooBig)
			}
			dense[ix] += v.val[p]
		}
		v.kind = KindDense
		v.idx = nil
		v.val = dense
	default: // dense += sparse
		for p, ix := range other.idx {
			if ix < 0 || ix >= len(v.val) {
				panic(panicSparseIndexTooBig)
			}
			v.val[ix] += factor * other.val[p]
		}
	}
}

// addSparseSparse is the merge step: one linear pass over both ascending
// index sequences, like the merge of a merge-sort.
func (v *Vector[T]) addSparseSparse(other *Vector[T], factor T) {
	if len(other.idx) == 0 {
		return
	}
	mergedIdx := make([]int, 0, len(v.idx)+len(other.idx))
	mergedVal := make([]T, 0, len(v.idx)+len(other.idx))

	left, right := 0, 0
	for left < len(v.idx) && right < len(other.idx) {
		switch {
		case v.idx[left] == other.idx[right]:
			sum := v.val[left] + factor*other.val[right]
			if !v.isZero(sum) {
				mergedIdx = append(mergedIdx, v.idx[left])
				mergedVal = append(mergedVal, sum)
			}
			left++
			right++
		case v.idx[left] < other.idx[right]:
			if !v.isZero(v.val[left]) {
				mergedIdx = append(mergedIdx, v.idx[left])
				mergedVal = append(mergedVal, v.val[left])
			}
			left++
		default:
			x := factor * other.val[right]
			if !v.isZero(x) {
				mergedIdx = append(mergedIdx, other.idx[right])
				mergedVal = append(mergedVal, x)
			}
			right++
		}
	}
	for ; left < len(v.idx); left++ {
		if !v.isZero(v.val[left]) {
			mergedIdx = append(mergedIdx, v.idx[left])
			mergedVal = append(mergedVal, v.val[left])
		}
	}
	for ; right < len(other.idx); right++ {
		x := factor * other.val[right]
		if !v.isZero(x) {
			mergedIdx = append(mergedIdx, other.idx[right])
			mergedVal = append(mergedVal, x)
		}
	}
	v.idx = mergedIdx
	v.val = mergedVal
}

// Mul multiplies the receiver by other, element-wise.
//
// Semantics per operand combination:
//
//   - sparse *= sparse: intersection merge. Only indices present in both
//     operands survive, with multiplied values; zero products are dropped.
//   - dense *= dense: sizes must match exactly; position-wise product.
//   - sparse *= dense: the dense operand acts as a lookup table; the sparse
//     entries are scaled in place by the looked-up values. Every sparse index
//     must be strictly less than the dense size.
//   - dense *= sparse: the receiver converts to sparse, keyed by the sparse
//     operand's indices, holding the products. This asymmetric,
//     storage-changing behavior is deliberate: the result's support is the
//     operand's support, so dense storage would waste the omitted positions.
func (v *Vector[T]) Mul(other *Vector[T]) {
	switch {
	case v.kind == KindSparse && other.kind == KindSparse:
		v.mulSparseSparse(other)
	case v.kind == KindDense && other.kind == KindDense:
		if len(v.val) != len(other.val) {
			panic(panicDenseSizeMismatch)
		}
		for i := range v.val {
			v.val[i] *= other.val[i]
		}
	case v.kind == KindSparse: // sparse *= dense
		outIdx := v.idx[:0]
		outVal := v.val[:0]
		for p, ix := range v.idx {
			if ix < 0 || ix >= len(other.val) {
				panic(panicSparseIndexTooBig)
			}
			prod := v.val[p] * other.val[ix]
			if !v.isZero(prod) {
				outIdx = append(outIdx, ix)
				outVal = append(outVal, prod)
			}
		}
		v.idx = outIdx
		v.val = outVal
	default: // dense *= sparse
		outIdx := make([]int, 0, len(other.idx))
		outVal := make([]T, 0, len(other.idx))
		for p, ix := range other.idx {
			if ix < 0 || ix >= len(v.val) {
				panic(panicSparseIndexTooBig)
			}
			prod := v.val[ix] * other.val[p]
			if !v.isZero(prod) {
				outIdx = append(outIdx, ix)
				outVal = append(outVal, prod)
			}
		}
		v.kind = KindSparse
		v.idx = outIdx
		v.val = outVal
	}
}

// mulSparseSparse keeps only the intersection of both supports. The result
// is never longer than the shorter operand.
func (v *Vector[T]) mulSparseSparse(other *Vector[T]) {
	n := min(len(v.idx), len(other.idx))
	mergedIdx := make([]int, 0, n)
	mergedVal := make([]T, 0, n)

	left, right := 0, 0
	for left < len(v.idx) && right < len(other.idx) {
		switch {
		case v.idx[left] == other.idx[right]:
			prod := v.val[left] * other.val[right]
			if !v.isZero(prod) {
				mergedIdx = append(mergedIdx, v.idx[left])
				mergedVal = append(mergedVal, prod)
			}
			left++
			right++
		case v.idx[left] < other.idx[right]:
			left++
		default:
			right++
		}
	}
	v.idx = mergedIdx
	v.val = mergedVal
}

// Dot returns the inner product of the receiver and other.
//
// Sparse-sparse pairs run an intersection merge accumulating the product sum,
// linear in the combined entry count with no allocation. Dense-dense pairs
// require equal sizes. Mixed pairs sum sparse-index lookups into the dense
// operand.
func (v *Vector[T]) Dot(other *Vector[T]) T {
	var sum T
	switch {
	case v.kind == KindSparse && other.kind == KindSparse:
		left, right := 0, 0
		for left < len(v.idx) && right < len(other.idx) {
			switch {
			case v.idx[left] == other.idx[right]:
				sum += v.val[left] * other.val[right]
				left++
				right++
			case v.idx[left] < other.idx[right]:
				left++
			default:
				right++
			}
		}
	case v.kind == KindDense && other.kind == KindDense:
		if len(v.val) != len(other.val) {
			panic(panicDenseSizeMismatch)
		}
		for i := range v.val {
			sum += v.val[i] * other.val[i]
		}
	case v.kind == KindSparse: // sparse . dense
		for p, ix := range v.idx {
			if ix < 0 || ix >= len(other.val) {
				panic(panicSparseIndexTooBig)
			}
			sum += v.val[p] * other.val[ix]
		}
	default: // dense . sparse
		for p, ix := range other.idx {
			if ix < 0 || ix >= len(v.val) {
				panic(panicSparseIndexTooBig)
			}
			sum += v.val[ix] * other.val[p]
		}
	}
	return sum
}
