package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the internal catalog record.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL      string           `json:"image_url"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	Sizes         []string         `json:"sizes,omitempty"`
	Colors        []string         `json:"colors,omitempty"`
	Benefits      []string         `json:"benefits,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
	InStock       bool             `json:"in_stock"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Row is the external record shape the remote catalog exposes. All field
// renaming and type coercion between this shape and Product happens in
// Row.Product, nowhere else.
type Row struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"original_price"`
	ImageURL      string   `json:"image_url"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Benefits      []string `json:"benefits"`
	IsFeatured    bool     `json:"is_featured"`
	InStock       bool     `json:"in_stock"`
	CreatedAt     string   `json:"created_at"`
}

// Product maps the external row into the internal shape. Unparseable prices
// and timestamps fall back to zero values rather than failing the whole
// listing.
func (r Row) Product() Product {
	p := Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Benefits:    r.Benefits,
		IsFeatured:  r.IsFeatured,
		InStock:     r.InStock,
	}

	if price, err := decimal.NewFromString(r.Price); err == nil {
		p.Price = price
	}
	if r.OriginalPrice != "" {
		if orig, err := decimal.NewFromString(r.OriginalPrice); err == nil {
			p.OriginalPrice = &orig
		}
	}
	if created, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		p.CreatedAt = created
	}
	return p
}
