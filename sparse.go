package tableau

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// SparseTableau is an index-sparse dual-view matrix: the set of row and
// column identities present is itself sparse. Each axis is an ordered mapping
// from a compact position 0..n-1 to an (identity, vector) pair, where the
// identity is the absolute row or column number the slot represents in the
// conceptual full-size matrix.
//
// A SparseTableau is only ever constructed by Vector.SparseCross and is
// structurally immutable afterwards. It is the natural shape for an outer
// product of two sparse vectors, where materializing every empty row and
// column of the full matrix would dominate the cost.
type SparseTableau[T Number] struct {
	rowIDs   []int
	rowHeads []*Vector[T]
	colIDs   []int
	colHeads []*Vector[T]

	// Roaring sets over the identities, for O(1)-ish membership probes
	// without scanning the position arrays.
	rowSet *roaring.Bitmap
	colSet *roaring.Bitmap
}

func newSparseTableau[T Number](rows, cols int) *SparseTableau[T] {
	return &SparseTableau[T]{
		rowIDs:   make([]int, rows),
		rowHeads: make([]*Vector[T], rows),
		colIDs:   make([]int, cols),
		colHeads: make([]*Vector[T], cols),
	}
}

// buildIDSets seeds the identity bitmaps from the filled position arrays.
// Called once, after the parallel construction phases; roaring bitmaps are
// not safe for concurrent mutation.
func (st *SparseTableau[T]) buildIDSets() {
	st.rowSet = roaring.New()
	for _, id := range st.rowIDs {
		st.rowSet.Add(uint32(id))
	}
	st.colSet = roaring.New()
	for _, id := range st.colIDs {
		st.colSet.Add(uint32(id))
	}
}

// Rows returns the number of materialized rows.
func (st *SparseTableau[T]) Rows() int { return len(st.rowHeads) }

// Cols returns the number of materialized columns.
func (st *SparseTableau[T]) Cols() int { return len(st.colHeads) }

// RowAt returns the vector at row position p.
func (st *SparseTableau[T]) RowAt(p int) *Vector[T] { return st.rowHeads[p] }

// ColAt returns the vector at column position p.
func (st *SparseTableau[T]) ColAt(p int) *Vector[T] { return st.colHeads[p] }

// RowIDAt returns the absolute row identity of row position p.
func (st *SparseTableau[T]) RowIDAt(p int) int { return st.rowIDs[p] }

// ColIDAt returns the absolute column identity of column position p.
func (st *SparseTableau[T]) ColIDAt(p int) int { return st.colIDs[p] }

// HasRow reports whether the absolute row identity id is materialized.
func (st *SparseTableau[T]) HasRow(id int) bool {
	return id >= 0 && st.rowSet.Contains(uint32(id))
}

// HasCol reports whether the absolute column identity id is materialized.
func (st *SparseTableau[T]) HasCol(id int) bool {
	return id >= 0 && st.colSet.Contains(uint32(id))
}

// RowIDs returns the materialized row identities in position order.
func (st *SparseTableau[T]) RowIDs() []int {
	out := make([]int, len(st.rowIDs))
	copy(out, st.rowIDs)
	return out
}

// ColIDs returns the materialized column identities in position order.
func (st *SparseTableau[T]) ColIDs() []int {
	out := make([]int, len(st.colIDs))
	copy(out, st.colIDs)
	return out
}

// At returns the value at absolute identities (rowID, colID), reading
// through the row axis. Identities that are not materialized hold the
// additive identity.
func (st *SparseTableau[T]) At(rowID, colID int) T {
	if !st.HasRow(rowID) {
		var zero T
		return zero
	}
	for p, id := range st.rowIDs {
		if id == rowID {
			return st.rowHeads[p].At(colID)
		}
	}
	var zero T
	return zero
}
