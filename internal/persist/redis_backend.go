package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each snapshot under its key as a plain string value
type RedisBackend struct {
	Client *redis.Client
}

// NewRedisBackend connects lazily; call Ping to verify the server
func NewRedisBackend(addr, password string, db int) *RedisBackend {
	return &RedisBackend{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Read returns the stored bytes for key, or ErrNotFound
func (b *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := b.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return value, nil
}

// Write overwrites key without expiry
func (b *RedisBackend) Write(ctx context.Context, key string, value []byte) error {
	if err := b.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

// Ping checks server reachability
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.Client.Ping(ctx).Err()
}

// Close releases the connection pool
func (b *RedisBackend) Close() error {
	return b.Client.Close()
}
