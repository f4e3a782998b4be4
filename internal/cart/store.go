package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no cart is persisted for the user.
var ErrNotFound = errors.New("cart not found")

// Store persists serialized cart state keyed by user id.
type Store interface {
	Save(ctx context.Context, userID string, raw []byte) error
	Load(ctx context.Context, userID string) ([]byte, error)
	Delete(ctx context.Context, userID string) error
}

// MemoryStore is an in-memory Store, used in tests and as a fallback when no
// durable backend is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, userID string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(raw))
	copy(buf, raw)
	s.data[userID] = buf
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, userID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, userID)
	return nil
}
