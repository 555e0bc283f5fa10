// Package testutil provides seeded random data generators for tests and
// benchmarks.
package testutil

import (
	"math/rand"
	"sort"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// SparseEntries generates n ascending, unique indices below maxIndex with
// non-zero values, ready to Append into a sparse vector in order.
func (r *RNG) SparseEntries(n, maxIndex int) (indices []int, values []float64) {
	if n > maxIndex {
		n = maxIndex
	}
	seen := make(map[int]struct{}, n)
	indices = make([]int, 0, n)
	for len(indices) < n {
		ix := r.rand.Intn(maxIndex)
		if _, ok := seen[ix]; ok {
			continue
		}
		seen[ix] = struct{}{}
		indices = append(indices, ix)
	}
	sort.Ints(indices)

	values = make([]float64, n)
	for i := range values {
		v := r.rand.Float64()*2 - 1
		if v == 0 {
			v = 1
		}
		values[i] = v
	}
	return indices, values
}

// DenseValues generates n random values in [-1, 1).
func (r *RNG) DenseValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = r.rand.Float64()*2 - 1
	}
	return values
}
