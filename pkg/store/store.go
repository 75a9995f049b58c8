package store

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Backend.Load when no snapshot is stored
// under the key.
var ErrNotFound = errors.New("snapshot not found")

// Backend stores encoded list snapshots by key.
type Backend interface {
	// Save stores v under key, replacing any previous snapshot.
	// v is copied by the backend.
	Save(ctx context.Context, key string, v []byte) error

	// Load returns the snapshot stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	Len() int

	io.Closer
}
