package memory

import (
	"context"
	"sync"

	"home-aidkit/internal/ports/kv"
)

type kvStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVStore es el respaldo del tracker de tomas cuando no hay Badger
// configurado. Se pierde al reiniciar; para dev alcanza.
func NewKVStore() kv.Store {
	return &kvStore{
		data: make(map[string][]byte),
	}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make([]byte, len(value))
	copy(raw, value)
	s.data[key] = raw
	return nil
}
