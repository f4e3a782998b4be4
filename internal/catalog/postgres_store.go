package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresStore is the Postgres-backed product catalog.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `id, name, description, price, original_price, image_url, category,
	rating, review_count, sizes, colors, benefits, is_featured, in_stock, created_at`

// List returns all products, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	return s.query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

// ListFeatured returns only products flagged as featured.
func (s *PostgresStore) ListFeatured(ctx context.Context) ([]Product, error) {
	return s.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_featured = TRUE ORDER BY created_at DESC`)
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new product and returns it with its assigned id.
func (s *PostgresStore) Create(ctx context.Context, p Product) (*Product, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.Name, p.Description, p.Price, originalPriceValue(p.OriginalPrice), p.ImageURL,
		p.Category, p.Rating, p.ReviewCount, pq.Array(p.Sizes), pq.Array(p.Colors),
		pq.Array(p.Benefits), p.IsFeatured, p.InStock, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, original_price = $4,
		 image_url = $5, category = $6, sizes = $7, colors = $8, benefits = $9,
		 is_featured = $10, in_stock = $11
		 WHERE id = $12`,
		p.Name, p.Description, p.Price, originalPriceValue(p.OriginalPrice), p.ImageURL,
		p.Category, pq.Array(p.Sizes), pq.Array(p.Colors), pq.Array(p.Benefits),
		p.IsFeatured, p.InStock, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p             Product
		originalPrice sql.NullString
		sizes         pq.StringArray
		colors        pq.StringArray
		benefits      pq.StringArray
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &originalPrice, &p.ImageURL,
		&p.Category, &p.Rating, &p.ReviewCount, &sizes, &colors, &benefits,
		&p.IsFeatured, &p.InStock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if originalPrice.Valid {
		if orig, err := decimal.NewFromString(originalPrice.String); err == nil {
			p.OriginalPrice = &orig
		}
	}
	p.Sizes = sizes
	p.Colors = colors
	p.Benefits = benefits
	return &p, nil
}

func originalPriceValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}
