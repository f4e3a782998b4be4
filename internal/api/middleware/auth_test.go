package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crystal-shop/internal/auth"
)

const testSecret = "test-secret-key-with-enough-length-32"

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(testSecret, 15*time.Minute, 24*time.Hour)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractToken(t *testing.T) {
	t.Run("from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

		assert.Equal(t, "cookie-token", ExtractToken(req))
	})

	t.Run("from bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractToken(req))
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		req.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractToken(req))
	})

	t.Run("absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", ExtractToken(req))
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token passes claims through", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "luna@example.com", false)
		require.NoError(t, err)

		var gotUserID string
		handler := AuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = GetUserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		handler := AuthMiddleware(jwtService)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		handler := AuthMiddleware(jwtService)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("no token still reaches the handler", func(t *testing.T) {
		var gotUserID string
		handler := OptionalAuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = GetUserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "", gotUserID)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "luna@example.com", false)
		require.NoError(t, err)

		var gotUserID string
		handler := OptionalAuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = GetUserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "user-1", gotUserID)
	})
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()

	serve := func(t *testing.T, token string) *httptest.ResponseRecorder {
		t.Helper()

		handler := AuthMiddleware(jwtService)(RequireAdmin(okHandler()))
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin claims pass", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("admin-1", "admin@example.com", true)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, serve(t, token).Code)
	})

	t.Run("non-admin claims are forbidden", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "luna@example.com", false)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, serve(t, token).Code)
	})

	t.Run("no claims is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		RequireAdmin(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	claims := &auth.Claims{UserID: "user-1", Email: "luna@example.com"}
	ctx := context.WithValue(context.Background(), UserContextKey, claims)

	got, ok := GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", got.UserID)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}
