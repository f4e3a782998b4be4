package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL. The order header lives in
// the orders table and line items in order_items; Create writes both inside
// a single transaction so a failed item insert never leaves a header behind.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, req Request) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	o := &Order{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Status:          StatusPending,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	addressJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping address: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, total_amount, shipping_address, status, payment_method, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.UserID, o.TotalAmount, addressJSON, o.Status.Display(), o.PaymentMethod, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, image_url)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, total_amount, shipping_address, status, payment_method, created_at, updated_at
		 FROM orders WHERE id = $1`,
		id,
	)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.list(ctx,
		`SELECT id, user_id, total_amount, shipping_address, status, payment_method, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*Order, error) {
	return s.list(ctx,
		`SELECT id, user_id, total_amount, shipping_address, status, payment_method, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`,
	)
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	var current string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("select order status: %w", err)
	}

	from, err := ParseStatus(current)
	if err != nil {
		return err
	}
	if !from.CanTransitionTo(status) {
		return from.TransitionError(status)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status.Display(), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		addressJSON []byte
		status      string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &addressJSON, &status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	o.Status, err = ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := s.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *PostgresStore) loadItems(ctx context.Context, o *Order) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, name, unit_price, quantity, image_url
		 FROM order_items WHERE order_id = $1`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity, &item.ImageURL); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
