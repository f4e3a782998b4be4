package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	rows := `[
		{"id":"prod-amethyst","name":"Amethyst Cluster","price":"25.99","is_featured":true,"in_stock":true},
		{"id":"prod-citrine","name":"Citrine Point","price":"18.00","is_featured":false,"in_stock":true}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Query().Get("id") == "prod-amethyst":
			w.Write([]byte(`[{"id":"prod-amethyst","name":"Amethyst Cluster","price":"25.99","is_featured":true,"in_stock":true}]`))
		case r.URL.Query().Get("id") != "":
			w.Write([]byte(`[]`))
		case r.URL.Query().Get("is_featured") == "true":
			w.Write([]byte(`[{"id":"prod-amethyst","name":"Amethyst Cluster","price":"25.99","is_featured":true,"in_stock":true}]`))
		default:
			w.Write([]byte(rows))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteStore(t *testing.T) {
	ctx := context.Background()
	srv := newCatalogServer(t)
	store := NewRemoteStore(srv.URL, "test-key", srv.Client())

	t.Run("lists all products", func(t *testing.T) {
		products, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.True(t, decimal.RequireFromString("25.99").Equal(products[0].Price))
	})

	t.Run("lists featured products", func(t *testing.T) {
		products, err := store.ListFeatured(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.True(t, products[0].IsFeatured)
	})

	t.Run("fetches one product by id", func(t *testing.T) {
		p, err := store.GetByID(ctx, "prod-amethyst")
		require.NoError(t, err)
		assert.Equal(t, "Amethyst Cluster", p.Name)
	})

	t.Run("missing product maps to not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, "prod-unobtainium")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRemoteStore_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "", srv.Client())
	_, err := store.List(context.Background())
	assert.Error(t, err)
}
