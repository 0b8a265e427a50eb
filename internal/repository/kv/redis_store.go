package kv

import (
	"context"
	"errors"

	"ai-canvas-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the key-value tier with Redis. Values live forever —
// the tier is a durability mirror, not a cache.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) contract.KeyValueStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
