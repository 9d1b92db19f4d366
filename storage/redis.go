package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "emberwood:save:"

// RedisStore keeps snapshots in Redis under emberwood:save:<slot>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects with a redis:// URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Put(ctx context.Context, slot string, data []byte) error {
	if err := r.client.Set(ctx, keyPrefix+slot, data, 0).Err(); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Delete(ctx context.Context, slot string) error {
	n, err := r.client.Del(ctx, keyPrefix+slot).Result()
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List scans for slot keys. SCAN keeps it safe on shared instances.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var slots []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		slots = append(slots, iter.Val()[len(keyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return slots, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
