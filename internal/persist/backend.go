package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when no entry exists for a key
var ErrNotFound = errors.New("snapshot not found")

// Backend is durable key-value storage for serialized snapshots.
// Write overwrites unconditionally; there is no merge or partial write.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
