package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Product(t *testing.T) {
	t.Run("maps the full external row", func(t *testing.T) {
		row := Row{
			ID:            "prod-amethyst",
			Name:          "Amethyst Cluster",
			Description:   "Deep purple cluster from Uruguay",
			Price:         "25.99",
			OriginalPrice: "34.99",
			ImageURL:      "/images/amethyst.jpg",
			Category:      "clusters",
			Rating:        4.8,
			ReviewCount:   212,
			Sizes:         []string{"S", "M", "L"},
			Colors:        []string{"purple"},
			Benefits:      []string{"calming", "clarity"},
			IsFeatured:    true,
			InStock:       true,
			CreatedAt:     "2026-01-15T09:30:00Z",
		}

		p := row.Product()

		assert.Equal(t, "prod-amethyst", p.ID)
		assert.True(t, decimal.RequireFromString("25.99").Equal(p.Price))
		require.NotNil(t, p.OriginalPrice)
		assert.True(t, decimal.RequireFromString("34.99").Equal(*p.OriginalPrice))
		assert.Equal(t, 4.8, p.Rating)
		assert.Equal(t, 212, p.ReviewCount)
		assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
		assert.True(t, p.IsFeatured)
		assert.True(t, p.InStock)
		assert.Equal(t, time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC), p.CreatedAt)
	})

	t.Run("absent original price maps to nil", func(t *testing.T) {
		p := Row{ID: "prod-1", Price: "10.00"}.Product()
		assert.Nil(t, p.OriginalPrice)
	})

	t.Run("unparseable price falls back to zero", func(t *testing.T) {
		p := Row{ID: "prod-1", Price: "free!"}.Product()
		assert.True(t, p.Price.IsZero())
	})

	t.Run("unparseable timestamp falls back to zero time", func(t *testing.T) {
		p := Row{ID: "prod-1", Price: "10.00", CreatedAt: "yesterday"}.Product()
		assert.True(t, p.CreatedAt.IsZero())
	})
}

func TestRow_DecodesSnakeCasePayload(t *testing.T) {
	payload := `{
		"id": "prod-citrine",
		"name": "Citrine Point",
		"price": "18.00",
		"original_price": "24.00",
		"image_url": "/images/citrine.jpg",
		"review_count": 58,
		"is_featured": false,
		"in_stock": true,
		"created_at": "2026-02-01T00:00:00Z"
	}`

	var row Row
	require.NoError(t, json.Unmarshal([]byte(payload), &row))

	p := row.Product()
	assert.Equal(t, "/images/citrine.jpg", p.ImageURL)
	assert.Equal(t, 58, p.ReviewCount)
	assert.True(t, p.InStock)
	require.NotNil(t, p.OriginalPrice)
}
