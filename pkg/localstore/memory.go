package localstore

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is used when no redis is configured, nothing survives a restart
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}

	return value.(string), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)

	return nil
}
