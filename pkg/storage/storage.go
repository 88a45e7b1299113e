// Package storage provides the key-value backends behind the cart snapshot.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is a minimal byte store addressed by string keys.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Discard never holds anything: reads miss and writes are dropped. It backs the
// session-only mode where carts live only in process memory.
type Discard struct{}

func (Discard) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (Discard) Set(context.Context, string, []byte) error   { return nil }
func (Discard) Delete(context.Context, string) error        { return nil }
