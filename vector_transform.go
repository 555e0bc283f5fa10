package tableau

import (
	"slices"

	"github.com/hupe1980/tableau/internal/parallel"
)

// Map produces a new vector with the same storage discipline and the same
// populated index set as v, with transform applied independently per entry.
// The element type may change.
//
// Entries are evaluated data-parallel in unspecified order: transform must be
// a pure function of (index, value) with no cross-entry state.
func Map[T, R Number](v *Vector[T], transform func(index int, value T) R) *Vector[R] {
	out := &Vector[R]{
		kind: v.kind,
		idx:  slices.Clone(v.idx),
		val:  make([]R, len(v.val)),
		eps:  v.eps,
	}
	parallel.For(len(v.val), func(p int) {
		ix, x := v.entryAt(p)
		out.val[p] = transform(ix, x)
	})
	return out
}

// Reduce performs a strict left-to-right fold over the populated entries,
// carrying the position of the winning value. The combine function fully
// defines the semantics, including tie-breaks; it receives the accumulator
// first and the current entry second.
func (v *Vector[T]) Reduce(combine func(acc, e Entry[T]) Entry[T], initial Entry[T]) Entry[T] {
	acc := initial
	for p := range v.val {
		ix, x := v.entryAt(p)
		acc = combine(acc, Entry[T]{Index: ix, Value: x})
	}
	return acc
}

// MinEntry is a Reduce combiner selecting the minimum value. On an exact tie
// the earlier entry wins, which makes Reduce(MinEntry, ...) a leftmost
// arg-min - the tie-break simplex pivot selection relies on.
func MinEntry[T Number](acc, e Entry[T]) Entry[T] {
	if e.Value < acc.Value {
		return e
	}
	return acc
}

// MaxEntry is a Reduce combiner selecting the maximum value, earlier entry
// winning exact ties.
func MaxEntry[T Number](acc, e Entry[T]) Entry[T] {
	if e.Value > acc.Value {
		return e
	}
	return acc
}
