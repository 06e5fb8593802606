// Package inmem is the map-backed record store used by tests and the dev
// server. Arrays are kept marshaled so Load hands out copies, never shared
// slices.
package inmem

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
)

type Store struct {
	mu     sync.RWMutex
	tables map[string][]byte
}

var _ core.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{tables: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, entity string, dst interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	s.mu.RLock()
	raw, ok := s.tables[entity]
	s.mu.RUnlock()
	if !ok {
		raw = []byte("[]")
	}
	return errors.Wrap(json.Unmarshal(raw, dst), "decoding records")
}

func (s *Store) Save(ctx context.Context, entity string, records interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encoding records")
	}
	s.mu.Lock()
	s.tables[entity] = raw
	s.mu.Unlock()
	return nil
}

// Seed primes an entity table during test setup.
func (s *Store) Seed(entity string, records interface{}) {
	if err := s.Save(context.Background(), entity, records); err != nil {
		panic(err)
	}
}
