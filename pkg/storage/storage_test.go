package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/glowshop-backend/pkg/db/models"
	"github.com/angelmondragon/glowshop-backend/pkg/redis"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound)

	payload := []byte(`[]`)
	require.NoError(t, store.Set(ctx, "cart:a", payload))
	payload[0] = 'x'

	got, err := store.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "stored value must not alias the caller's slice")

	require.NoError(t, store.Delete(ctx, "cart:a"))
	_, err = store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDiscardNeverHolds(t *testing.T) {
	ctx := context.Background()
	var store KeyValue = Discard{}
	require.NoError(t, store.Set(ctx, "cart:a", []byte("[]")))
	_, err := store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(ctx, "cart:a"))
}

func TestRedisMapsMissingSnapshotToNotFound(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedis(client, time.Hour)

	_, err := store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart:a", []byte(`[{"quantity":2}]`)))
	assert.Equal(t, time.Hour, client.ttls["cart:a"])

	got, err := store.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":2}]`, string(got))

	require.NoError(t, store.Delete(ctx, "cart:a"))
	_, err = store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisPassesThroughOtherErrors(t *testing.T) {
	client := newFakeRedis()
	client.getErr = errors.New("connection refused")
	store := NewRedis(client, 0)

	_, err := store.Get(context.Background(), "cart:a")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTableUpsertAndExpiry(t *testing.T) {
	ctx := context.Background()
	conn := setupSnapshotDB(t)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store := NewTable(conn, time.Hour)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "cart:a", []byte(`[1]`)))
	require.NoError(t, store.Set(ctx, "cart:a", []byte(`[2]`)))

	var count int64
	require.NoError(t, conn.Model(&models.CartSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "set must upsert by key")

	got, err := store.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(got))

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "cart:a")
	require.ErrorIs(t, err, ErrNotFound, "expired rows read as missing")

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestTableDelete(t *testing.T) {
	ctx := context.Background()
	store := NewTable(setupSnapshotDB(t), 0)

	require.NoError(t, store.Set(ctx, "cart:b", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "cart:b"))
	_, err := store.Get(ctx, "cart:b")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(ctx, "cart:b"), "deleting a missing key is not an error")
}

func setupSnapshotDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "snapshots.db")), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS cart_snapshots (
  snapshot_key VARCHAR(255) PRIMARY KEY,
  payload TEXT NOT NULL,
  expires_at TIMESTAMP,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

type fakeRedis struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) LoadSnapshot(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, redis.ErrSnapshotMissing
	}
	return v, nil
}

func (f *fakeRedis) SaveSnapshot(_ context.Context, key string, raw []byte, ttl time.Duration) error {
	f.data[key] = raw
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) DropSnapshot(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}
