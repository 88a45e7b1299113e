package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Every cart snapshot lives under glowshop:snapshot:<key>.
const snapshotNamespace = "glowshop:snapshot:"

var (
	// ErrSnapshotMissing is returned by LoadSnapshot when nothing is stored under the key.
	ErrSnapshotMissing = errors.New("snapshot not stored")

	errNotConnected = errors.New("redis snapshot client not connected")
	errEmptyKey     = errors.New("snapshot key is empty")
)

// commands is the subset of go-redis the snapshot client issues.
type commands interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Pinger exposes the readiness check.
type Pinger interface {
	Ping(context.Context) error
}

// Client reads and writes serialized cart snapshots.
type Client struct {
	cmds commands
	conn *redis.Client
}

// New dials redis with the configured pool and checks that it answers.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := dialOptions(cfg)
	if err != nil {
		return nil, err
	}
	conn := redis.NewClient(opts)
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{"redis_addr": opts.Addr, "redis_db": opts.DB})
		logg.Info(logCtx, "snapshot store connected")
	}
	return &Client{cmds: conn, conn: conn}, nil
}

// dialOptions prefers the URL. Pool and timeout settings from cfg fill whatever the URL
// leaves unset.
func dialOptions(cfg config.RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	case cfg.Address != "":
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password}
	default:
		return nil, fmt.Errorf("%s or %s is required", config.EnvRedisURL, config.EnvRedisAddr)
	}
	opts.DB = firstNonZero(opts.DB, cfg.DB)
	opts.PoolSize = firstNonZero(opts.PoolSize, cfg.PoolSize)
	opts.MinIdleConns = firstNonZero(opts.MinIdleConns, cfg.MinIdleConns)
	opts.DialTimeout = firstNonZero(opts.DialTimeout, cfg.DialTimeout)
	opts.ReadTimeout = firstNonZero(opts.ReadTimeout, cfg.ReadTimeout)
	opts.WriteTimeout = firstNonZero(opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func firstNonZero[T int | time.Duration](values ...T) T {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func snapshotKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errEmptyKey
	}
	return snapshotNamespace + key, nil
}

// LoadSnapshot returns the raw snapshot bytes or ErrSnapshotMissing.
func (c *Client) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	if c.cmds == nil {
		return nil, errNotConnected
	}
	full, err := snapshotKey(key)
	if err != nil {
		return nil, err
	}
	raw, err := c.cmds.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMissing
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", full, err)
	}
	return raw, nil
}

// SaveSnapshot overwrites the snapshot. A zero ttl keeps it until deleted.
func (c *Client) SaveSnapshot(ctx context.Context, key string, raw []byte, ttl time.Duration) error {
	if c.cmds == nil {
		return errNotConnected
	}
	full, err := snapshotKey(key)
	if err != nil {
		return err
	}
	if err := c.cmds.Set(ctx, full, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", full, err)
	}
	return nil
}

// DropSnapshot deletes the snapshot. Dropping a missing key is not an error.
func (c *Client) DropSnapshot(ctx context.Context, key string) error {
	if c.cmds == nil {
		return errNotConnected
	}
	full, err := snapshotKey(key)
	if err != nil {
		return err
	}
	if err := c.cmds.Del(ctx, full).Err(); err != nil {
		return fmt.Errorf("drop snapshot %s: %w", full, err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
