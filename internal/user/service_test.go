package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store for tests.
type memoryStore struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *memoryStore) Create(ctx context.Context, u *User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryStore) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryStore) UpdateProfile(ctx context.Context, id, name string) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Name = name
	return nil
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		svc := NewService(newMemoryStore())

		u, err := svc.Register(ctx, "luna@example.com", "moonstone42", "Luna Vega")

		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "luna@example.com", u.Email)
		assert.NotEqual(t, "moonstone42", u.PasswordHash)
		assert.False(t, u.IsAdmin, "self-registration never grants admin")
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		svc := NewService(newMemoryStore())
		_, err := svc.Register(ctx, "luna@example.com", "moonstone42", "Luna Vega")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "luna@example.com", "other-pass-123", "Impostor")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewService(newMemoryStore())

		_, err := svc.Register(ctx, "luna@example.com", "short", "Luna Vega")
		assert.Error(t, err)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())
	_, err := svc.Register(ctx, "luna@example.com", "moonstone42", "Luna Vega")
	require.NoError(t, err)

	t.Run("accepts valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "luna@example.com", "moonstone42")
		require.NoError(t, err)
		assert.Equal(t, "luna@example.com", u.Email)
	})

	t.Run("wrong password and unknown email return the same error", func(t *testing.T) {
		_, errPass := svc.Authenticate(ctx, "luna@example.com", "wrong-password")
		_, errEmail := svc.Authenticate(ctx, "nobody@example.com", "moonstone42")

		assert.ErrorIs(t, errPass, ErrInvalidCredentials)
		assert.ErrorIs(t, errEmail, ErrInvalidCredentials)
		assert.Equal(t, errPass, errEmail, "authentication failures must not reveal which accounts exist")
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewService(store)
	u, err := svc.Register(ctx, "luna@example.com", "moonstone42", "Luna Vega")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, u.ID, "Luna V."))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luna V.", got.Name)
}
