package tableau

import (
	"errors"
	"fmt"
)

// Panic messages for contract violations. These indicate caller bugs and are
// intentionally not recoverable errors.
const (
	panicDenseSizeMismatch = "tableau: dense size mismatch"
	panicIndexOutOfRange   = "tableau: dense index out of range"
	panicSparseIndexTooBig = "tableau: sparse index exceeds dense size"
	panicRowAxisMissing    = "tableau: row axis not materialized under current format"
	panicColAxisMissing    = "tableau: column axis not materialized under current format"
	panicSparseOnly        = "tableau: operation requires sparse storage"
	panicShapeMismatch     = "tableau: shape mismatch"
	panicFormatMismatch    = "tableau: format mismatch"
	panicNoExtraColumn     = "tableau: no column to remove"
	panicNegativeDimension = "tableau: negative dimension"
)

var (
	// ErrSnapshotCorrupt is returned when a snapshot blob fails structural
	// validation (bad magic, truncated envelope, malformed payload).
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrChecksumMismatch is returned when a snapshot payload does not match
	// the checksum recorded in its envelope.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrUnknownCodec is returned when a snapshot references a codec name
	// this build does not provide.
	ErrUnknownCodec = errors.New("unknown codec")
)

// ErrVersionMismatch indicates a snapshot written by an incompatible format
// version.
type ErrVersionMismatch struct {
	Got  uint32
	Want uint32
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("unsupported snapshot version: got %d, want %d", e.Got, e.Want)
}

// ErrKindMismatch indicates a snapshot whose stored element kind does not
// match the type parameter it is being loaded into.
type ErrKindMismatch struct {
	Stored string
	Loaded string
	cause  error
}

func (e *ErrKindMismatch) Error() string {
	return fmt.Sprintf("snapshot element mismatch: stored %q, loading as %q", e.Stored, e.Loaded)
}

func (e *ErrKindMismatch) Unwrap() error { return e.cause }

// errInvariant reports a representation-invariant violation found by a
// Validate call.
func errInvariant(msg string, a, b int) error {
	return fmt.Errorf("tableau: invariant violated: %s (%d, %d)", msg, a, b)
}
