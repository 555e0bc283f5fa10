package tableau

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/tableau/internal/parallel"
)

// Format selects which axes of a Tableau are materialized.
type Format uint8

const (
	// FormatRowAndColumn keeps both the row view and the column view.
	FormatRowAndColumn Format = iota
	// FormatRowOnly keeps only the row view; column accessors panic.
	FormatRowOnly
	// FormatColumnOnly keeps only the column view; row accessors panic.
	FormatColumnOnly
)

func (f Format) String() string {
	switch f {
	case FormatRowAndColumn:
		return "row+column"
	case FormatRowOnly:
		return "row-only"
	case FormatColumnOnly:
		return "column-only"
	default:
		return "unknown"
	}
}

func (f Format) hasRows() bool { return f != FormatColumnOnly }
func (f Format) hasCols() bool { return f != FormatRowOnly }

// Tableau is a dense-indexed matrix kept as a vector per row and a vector per
// column over the same logical values.
//
// Whenever both axes are present they must agree: the value at (i, j) read
// through the row view equals the value read through the column view. There
// is no automatic synchronization - every mutator writes through both axes
// itself. This is the central invariant of the type; Validate checks it.
//
// The Format is fixed at construction. Row and column counts are fixed too,
// except for AppendExtraCol/RemoveExtraCol, the single supported dimension
// mutation.
type Tableau[T Number] struct {
	rows, cols int
	format     Format
	rowHeads   []*Vector[T] // nil when FormatColumnOnly
	colHeads   []*Vector[T] // nil when FormatRowOnly
	eps        float64
}

// NewTableau creates a rows-by-cols tableau with every present row and
// column vector empty. Initialization parallelizes across slots.
func NewTableau[T Number](rows, cols int, opts ...Option) *Tableau[T] {
	if rows < 0 || cols < 0 {
		panic(panicNegativeDimension)
	}
	o := applyOptions(opts)
	t := &Tableau[T]{rows: rows, cols: cols, format: o.format, eps: o.eps}
	if t.format.hasRows() {
		t.rowHeads = make([]*Vector[T], rows)
		parallel.For(rows, func(i int) {
			t.rowHeads[i] = &Vector[T]{kind: KindSparse, eps: o.eps}
		})
	}
	if t.format.hasCols() {
		t.colHeads = make([]*Vector[T], cols)
		parallel.For(cols, func(j int) {
			t.colHeads[j] = &Vector[T]{kind: KindSparse, eps: o.eps}
		})
	}
	return t
}

// Rows returns the row count.
func (t *Tableau[T]) Rows() int { return t.rows }

// Cols returns the column count.
func (t *Tableau[T]) Cols() int { return t.cols }

// Format returns the storage-format mode.
func (t *Tableau[T]) Format() Format { return t.format }

// Row returns the vector owned as row i. It panics when the row axis is not
// materialized under the current format.
func (t *Tableau[T]) Row(i int) *Vector[T] {
	if !t.format.hasRows() {
		panic(panicRowAxisMissing)
	}
	return t.rowHeads[i]
}

// Col returns the vector owned as column j. It panics when the column axis
// is not materialized under the current format.
func (t *Tableau[T]) Col(j int) *Vector[T] {
	if !t.format.hasCols() {
		panic(panicColAxisMissing)
	}
	return t.colHeads[j]
}

// At returns the value at (row, col), reading through the row axis when
// present and the column axis otherwise.
func (t *Tableau[T]) At(row, col int) T {
	if t.format.hasRows() {
		return t.rowHeads[row].At(col)
	}
	return t.colHeads[col].At(row)
}

// AppendRow installs v as row i outright and scatters its entries into the
// corresponding column vectors, establishing cross-axis consistency. The
// tableau takes ownership of v.
//
// Scattering appends i at the end of each touched column, so callers must
// install rows in an order that keeps column indices ascending.
func (t *Tableau[T]) AppendRow(i int, v *Vector[T]) {
	if t.format.hasRows() {
		t.rowHeads[i] = v
	}
	if t.format.hasCols() {
		for ix, x := range v.All() {
			t.colHeads[ix].Append(i, x)
		}
	}
}

// AppendCol installs v as column j outright and scatters its entries into the
// corresponding row vectors. The tableau takes ownership of v.
func (t *Tableau[T]) AppendCol(j int, v *Vector[T]) {
	if t.format.hasCols() {
		t.colHeads[j] = v
	}
	if t.format.hasRows() {
		for ix, x := range v.All() {
			t.rowHeads[ix].Append(j, x)
		}
	}
}

// AppendExtraCol grows the column count by one, installs v as the new last
// column and scatters its entries into the corresponding rows. This is the
// only supported dimension growth.
func (t *Tableau[T]) AppendExtraCol(v *Vector[T]) {
	j := t.cols
	t.cols++
	if t.format.hasCols() {
		t.colHeads = append(t.colHeads, v)
	}
	if t.format.hasRows() {
		for ix, x := range v.All() {
			t.rowHeads[ix].Append(j, x)
		}
	}
}

// RemoveExtraCol shrinks the column count by one, undoing the most recent
// AppendExtraCol. Affected rows drop their trailing entry via the guarded
// Pop, so rows that never held the removed column are unaffected.
func (t *Tableau[T]) RemoveExtraCol() {
	if t.cols == 0 {
		panic(panicNoExtraColumn)
	}
	t.cols--
	removed := t.cols
	if t.format.hasCols() {
		last := t.colHeads[removed]
		t.colHeads = t.colHeads[:removed]
		if t.format.hasRows() {
			for ix := range last.All() {
				t.rowHeads[ix].Pop(removed)
			}
		}
		return
	}
	// Row-only: no column vector to walk, so probe every row. The expected-
	// last-index guard makes the pop a no-op on rows without the entry.
	for _, row := range t.rowHeads {
		row.Pop(removed)
	}
}

// Add accumulates other into the receiver. Both tableaus must have equal
// shape and equal format.
//
// Per-row additions and per-column additions are each independent across
// their index and run data-parallel; the two axis phases reproduce the same
// logical matrix and stay consistent by construction.
func (t *Tableau[T]) Add(other *Tableau[T]) {
	if t.rows != other.rows || t.cols != other.cols {
		panic(panicShapeMismatch)
	}
	if t.format != other.format {
		panic(panicFormatMismatch)
	}
	if t.format.hasRows() {
		parallel.For(t.rows, func(i int) {
			t.rowHeads[i].Add(other.rowHeads[i])
		})
	}
	if t.format.hasCols() {
		parallel.For(t.cols, func(j int) {
			t.colHeads[j].Add(other.colHeads[j])
		})
	}
}

// AddSparse accumulates an index-sparse tableau into the receiver, mapping
// each sparse row/column position onto its absolute identity.
func (t *Tableau[T]) AddSparse(other *SparseTableau[T]) {
	if t.format.hasRows() {
		parallel.For(other.Rows(), func(p int) {
			t.rowHeads[other.RowIDAt(p)].Add(other.RowAt(p))
		})
	}
	if t.format.hasCols() {
		parallel.For(other.Cols(), func(p int) {
			t.colHeads[other.ColIDAt(p)].Add(other.ColAt(p))
		})
	}
}

// SumScaledRows returns the dense vector of length Cols holding the sum over
// rows i of scale.At(i) * Row(i).
//
// When only the column axis is materialized the same result is computed the
// other way around: entry j is scale.Dot(Col(j)).
func (t *Tableau[T]) SumScaledRows(scale *Vector[T]) *Vector[T] {
	res := &Vector[T]{kind: KindDense, val: make([]T, t.cols), eps: t.eps}
	if t.format.hasRows() {
		for ix, s := range scale.All() {
			res.AddScaled(t.rowHeads[ix], s)
		}
		return res
	}
	parallel.For(t.cols, func(j int) {
		res.val[j] = scale.Dot(t.colHeads[j])
	})
	return res
}

// Times returns the matrix-vector product as a dense vector of length Rows:
// entry i is Row(i).Dot(x). The row axis must be materialized.
func (t *Tableau[T]) Times(x *Vector[T]) *Vector[T] {
	if !t.format.hasRows() {
		panic(panicRowAxisMissing)
	}
	res := &Vector[T]{kind: KindDense, val: make([]T, t.rows), eps: t.eps}
	parallel.For(t.rows, func(i int) {
		res.val[i] = t.rowHeads[i].Dot(x)
	})
	return res
}

// Validate checks every present vector's representation invariants and, when
// both axes are materialized, the cross-axis agreement invariant: every entry
// reachable through the row view must be present with the same value in the
// column view, and vice versa.
//
// It is a diagnostic for tests and debugging; the invariant itself is
// maintained manually by every mutator.
func (t *Tableau[T]) Validate() error {
	if t.format.hasRows() {
		for i, row := range t.rowHeads {
			if err := row.Validate(); err != nil {
				return errInvariant("row vector invalid", i, 0)
			}
		}
	}
	if t.format.hasCols() {
		for j, col := range t.colHeads {
			if err := col.Validate(); err != nil {
				return errInvariant("column vector invalid", j, 0)
			}
		}
	}
	if !t.format.hasRows() || !t.format.hasCols() {
		return nil
	}

	// Mark every (i, j) seen through the row view, then clear marks while
	// walking the column view. Surviving marks are row entries the column
	// view lost; a failed clear is a column entry the row view lost.
	seen := bitset.New(uint(t.rows * t.cols))
	for i, row := range t.rowHeads {
		for j, x := range row.All() {
			if j < 0 || j >= t.cols {
				return errInvariant("row entry column out of range", i, j)
			}
			if row.isZero(x) {
				continue // dense rows materialize zeros; they need no column twin
			}
			seen.Set(uint(i*t.cols + j))
		}
	}
	for j, col := range t.colHeads {
		for i, x := range col.All() {
			if i < 0 || i >= t.rows {
				return errInvariant("column entry row out of range", j, i)
			}
			if col.isZero(x) {
				continue
			}
			bit := uint(i*t.cols + j)
			if !seen.Test(bit) {
				return errInvariant("column entry missing from row view", i, j)
			}
			seen.Clear(bit)
			if got := t.rowHeads[i].At(j); got != x {
				return errInvariant("axis disagreement", i, j)
			}
		}
	}
	if n, ok := seen.NextSet(0); ok {
		return errInvariant("row entry missing from column view", int(n)/t.cols, int(n)%t.cols)
	}
	return nil
}
