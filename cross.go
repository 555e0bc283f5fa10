package tableau

import (
	"github.com/hupe1980/tableau/internal/parallel"
)

// Cross builds the rows-by-cols outer-product tableau of v and other:
// cell (i, j) holds v.At(i) * other.At(j).
//
// The matrix is seeded axis by axis rather than cell by cell: row i is a
// clone of other scaled by v's entry at i, and column j is a clone of v
// scaled by other's entry at j. Both seedings agree at every (i, j) by
// construction, which costs O(Size(v) + Size(other)) vector clones instead of
// O(Size(v) * Size(other)) element writes.
//
// The row-building and column-building phases each parallelize across their
// index; the two phases run with a barrier in between.
func (v *Vector[T]) Cross(other *Vector[T], rows, cols int, opts ...Option) *Tableau[T] {
	t := NewTableau[T](rows, cols, opts...)
	if t.format.hasRows() {
		parallel.For(v.Size(), func(p int) {
			ix, scale := v.entryAt(p)
			row := other.Clone()
			row.Scale(scale)
			t.rowHeads[ix] = row
		})
	}
	if t.format.hasCols() {
		parallel.For(other.Size(), func(p int) {
			ix, scale := other.entryAt(p)
			col := v.Clone()
			col.Scale(scale)
			t.colHeads[ix] = col
		})
	}
	return t
}

// SparseCross builds the outer product of v and other as a SparseTableau:
// only the rows and columns actually touched are materialized. Row position
// p carries identity v's pth populated index and the vector other scaled by
// v's pth value; column positions mirror that with the operands swapped.
//
// The result is a construction-time snapshot - it supports no incremental
// append and is typically consumed by Tableau.AddSparse and discarded.
func (v *Vector[T]) SparseCross(other *Vector[T]) *SparseTableau[T] {
	st := newSparseTableau[T](v.Size(), other.Size())
	parallel.For(v.Size(), func(p int) {
		ix, scale := v.entryAt(p)
		row := other.Clone()
		row.Scale(scale)
		st.rowIDs[p] = ix
		st.rowHeads[p] = row
	})
	parallel.For(other.Size(), func(p int) {
		ix, scale := other.entryAt(p)
		col := v.Clone()
		col.Scale(scale)
		st.colIDs[p] = ix
		st.colHeads[p] = col
	})
	st.buildIDSets()
	return st
}
