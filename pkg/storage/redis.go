package storage

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/glowshop-backend/pkg/redis"
)

type snapshotClient interface {
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)
	SaveSnapshot(ctx context.Context, key string, raw []byte, ttl time.Duration) error
	DropSnapshot(ctx context.Context, key string) error
}

// Redis keeps values in the redis snapshot namespace with an optional TTL.
type Redis struct {
	client snapshotClient
	ttl    time.Duration
}

// NewRedis wraps a connected redis client.
func NewRedis(client snapshotClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.LoadSnapshot(ctx, key)
	if errors.Is(err, redis.ErrSnapshotMissing) {
		return nil, ErrNotFound
	}
	return raw, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.SaveSnapshot(ctx, key, value, r.ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.DropSnapshot(ctx, key)
}
