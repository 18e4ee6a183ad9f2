package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"school-report-bot/internal/features/moderation/models"
)

// RedisBackend keeps the snapshot document under a single Redis key. The
// schema is identical to the file backend, only the medium differs.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// OpenRedisBackend creates a Redis client and pings it to validate the
// connection.
func OpenRedisBackend(ctx context.Context, addr, password string, db int, key string) (*RedisBackend, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &RedisBackend{client: c, key: key}, nil
}

func (b *RedisBackend) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot key %s: %w", b.key, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot key %s: %w", b.key, err)
	}
	return &snap, nil
}

func (b *RedisBackend) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot key %s: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
