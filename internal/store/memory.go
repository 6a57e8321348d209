package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryKV is an in-process KV used when no Redis address is configured,
// and by tests. Values are kept as marshaled JSON so Get/Set semantics
// match the Redis implementation exactly.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (s *MemoryKV) Get(_ context.Context, key string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return ErrKeyNotFound
	}
	return json.Unmarshal(data, v)
}

func (s *MemoryKV) Set(_ context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
