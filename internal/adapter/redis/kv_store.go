package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// KVStore implements port.KVStore on plain Redis string keys. Every key is
// namespaced with prefix so several dashboards can share one server.
type KVStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewKVStore returns a store writing keys as prefix+key.
func NewKVStore(client goredis.UniversalClient, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key without expiry.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
