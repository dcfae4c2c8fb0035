package localstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys the sync client persists between runs
const (
	KeyCacheDate   = "cachedate"
	KeyCache       = "cache"
	KeyReadList    = "readlist"
	KeyUseLocation = "useloc"
)

// Store is the small key/value storage the app keeps across restarts
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

func GetStringList(ctx context.Context, store Store, key string) ([]string, error) {
	value, found, err := store.Get(ctx, key)
	if err != nil || !found || value == "" {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}

	return list, nil
}

func SetStringList(ctx context.Context, store Store, key string, list []string) error {
	if list == nil {
		list = []string{}
	}

	value, err := json.Marshal(list)
	if err != nil {
		return err
	}

	return store.Set(ctx, key, string(value))
}

func GetBool(ctx context.Context, store Store, key string) (bool, error) {
	value, _, err := store.Get(ctx, key)

	return value == "true", err
}

func SetBool(ctx context.Context, store Store, key string, value bool) error {
	return store.Set(ctx, key, fmt.Sprint(value))
}
