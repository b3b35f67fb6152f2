// Package storage provides the key-value stores that back persisted user
// and session state.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a flat key-value store. Values are opaque bytes; callers own the
// encoding. There is no locking across Get and Set, so read-modify-write
// cycles from concurrent processes can overwrite each other.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
