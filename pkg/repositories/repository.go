package repositories

import (
	"context"
)

// Repository is a durable key/value store.
// LoadValue returns *ErrNotFound when the key has never been saved.
// Implementations must be safe for concurrent use.
type Repository interface {
	Close(ctx context.Context) error
	SaveValue(ctx context.Context, key string, value []byte) error
	LoadValue(ctx context.Context, key string) ([]byte, error)
	DeleteValue(ctx context.Context, key string) error
}
