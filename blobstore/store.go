// Package blobstore abstracts where tableau snapshots live. Snapshots are
// small immutable blobs written once and read whole, so the interface is a
// plain Get/Put rather than a streaming or random-access API.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// Store is an abstraction for reading and writing immutable snapshot blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get reads the named blob in full.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
