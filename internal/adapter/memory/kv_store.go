package memory

import (
	"context"
	"sync"
)

// KVStore is the in-process port.KVStore. Nothing survives a restart.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
	failOn map[string]error
}

// NewKVStore returns an empty store.
func NewKVStore() *KVStore {
	return &KVStore{values: map[string]string{}, failOn: map[string]error{}}
}

// Get returns the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key, or returns the error registered by FailWrites.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[key]; err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

// FailWrites makes every later Set of key return err. A nil err clears it.
// It emulates a full or read-only backing store.
func (s *KVStore) FailWrites(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, key)
		return
	}
	s.failOn[key] = err
}
