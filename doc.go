// Package tableau implements the data-structure kernel of a simplex tableau:
// numeric vectors that may be stored sparsely (ascending index/value pairs) or
// densely (flat arrays), and two dual-view matrix types built from them.
//
// The three central types are:
//
//   - Vector: a one-dimensional numeric container, generic over the element
//     type, with merge-based arithmetic that handles every combination of
//     sparse and dense operands under a single contract.
//   - Tableau: a fixed-size matrix that keeps a vector per row and a vector
//     per column over the same logical values. Depending on the Format, one
//     of the two axes may be omitted to save memory.
//   - SparseTableau: the same dual-view contract, but sparse over row and
//     column identity. It is only ever produced by Vector.SparseCross and is
//     typically consumed by Tableau.AddSparse.
//
// The package exposes exactly the primitives a simplex solver needs - row and
// column access, add, scale, dot product and outer-product construction - and
// deliberately contains no pivoting logic of its own.
//
// Construction and whole-matrix arithmetic parallelize across independent
// rows and columns; within a parallel phase every worker writes only its own
// slot, so no locking is involved.
//
// Contract violations (dense size mismatches, out-of-range dense indices,
// access to an axis the Format omits) panic. They indicate caller bugs, not
// runtime conditions, and are never silently downgraded. Speculative
// operations such as Set on an absent sparse index or a guarded Pop with a
// stale index are silent no-ops.
//
// Snapshots of vectors and tableaus can be persisted through the blobstore
// and codec packages, with optional LZ4 or Zstandard compression.
package tableau
