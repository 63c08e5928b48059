// Package persist mirrors selected store slices to durable local storage.
package persist

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Storage is a flat key-value surface. Values are opaque JSON blobs.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
