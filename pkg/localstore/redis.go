package localstore

import (
	"context"
	"errors"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "nextferry:"

type RedisStore struct {
	Cache  *cache.Cache[string]
	Prefix string
}

// NewRedisStore keeps values without expiry, they are only replaced by newer syncs
func NewRedisStore(client *redis.Client) *RedisStore {
	redisStore := redisstore.NewRedis(client)

	return &RedisStore{
		Cache:  cache.New[string](redisStore),
		Prefix: defaultKeyPrefix,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.Cache.Get(ctx, s.Prefix+key)

	if errors.Is(err, store.NotFound{}) || errors.Is(err, redis.Nil) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.Cache.Set(ctx, s.Prefix+key, value)
}
