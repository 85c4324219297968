package storage

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/sangkips/restropos-api/pkg/apperror"
)

// memoryStore keeps collections as serialized blobs in a map. It round-trips
// through JSON exactly like the postgres store so value-copy semantics and
// malformed-data handling behave identically. Used by tests and demo mode.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	hub  *hub

	// failKey/failErr arm a one-shot write failure for a specific key.
	// Tests use it to exercise persistence-failure paths.
	failKey string
	failErr error
}

// NewMemory creates an in-memory Store.
func NewMemory() Store {
	return &memoryStore{
		data: make(map[string][]byte),
		hub:  newHub(),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("storage: discarding malformed value for key %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperror.NewPersistenceError(err)
	}

	s.mu.Lock()
	if s.failErr != nil && (s.failKey == "" || s.failKey == key) {
		err := s.failErr
		s.failErr = nil
		s.failKey = ""
		s.mu.Unlock()
		return apperror.NewPersistenceError(err)
	}
	s.data[key] = data
	s.mu.Unlock()

	s.hub.notify(key)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	s.hub.notify(key)
	return nil
}

func (s *memoryStore) Subscribe(key string, fn func(string)) func() {
	return s.hub.subscribe(key, fn)
}

// FailNextWrite arms a one-shot write failure. An empty key fails the next
// write to any key; otherwise only a write to that key fails. Only the
// in-memory store supports this; callers type-assert from Store in tests.
func (s *memoryStore) FailNextWrite(key string, err error) {
	s.mu.Lock()
	s.failKey = key
	s.failErr = err
	s.mu.Unlock()
}

// CorruptValue overwrites a key with unparseable bytes, for tests covering
// the malformed-data-as-absent contract.
func (s *memoryStore) CorruptValue(key string) {
	s.mu.Lock()
	s.data[key] = []byte("{not json")
	s.mu.Unlock()
}
