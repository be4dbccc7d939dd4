// Package persist stores versioned state records by key.
package persist

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrCorrupt         = errors.New("record corrupt")
	ErrVersionMismatch = errors.New("record version mismatch")
)

// Adapter is a key/value store for encoded records. Load returns ErrNotFound
// when no record exists. Delete of a missing key is not an error.
type Adapter interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
