package cart

import (
	"context"
	"sync"
)

// Service hands out the per-user Cart. Each cart is hydrated from the Store
// on first access and cached for the lifetime of the process; subsequent
// requests for the same user share the same Cart instance.
type Service struct {
	mu    sync.Mutex
	store Store
	carts map[string]*Cart
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		carts: make(map[string]*Cart),
	}
}

// ForUser returns the cart for a user, hydrating it on first access.
func (s *Service) ForUser(ctx context.Context, userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := Hydrate(ctx, userID, s.store)
	s.carts[userID] = c
	return c
}
