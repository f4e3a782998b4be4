package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/crystal-shop/internal/auth"
)

// Service wraps the Store with registration and credential checks.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new account with a hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	if existing, err := s.store.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies credentials and returns the matching user. Wrong
// email and wrong password produce the same error so the response does not
// leak which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile changes the display name on a profile.
func (s *Service) UpdateProfile(ctx context.Context, id, name string) error {
	return s.store.UpdateProfile(ctx, id, name)
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.GetByID(ctx, id)
}
