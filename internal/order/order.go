package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidTransit  = errors.New("invalid order status transition")
	ErrOrderDelivered  = errors.New("order is already delivered")
	ErrOrderCancelled  = errors.New("order is already cancelled")
)

// validTransitions defines allowed status transitions. Transitions are
// admin-driven; the storefront only ever creates pending orders.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {}, // terminal state
	StatusCancelled: {}, // terminal state
}

// ParseStatus parses a status string case-insensitively. The remote store
// convention capitalizes the first letter, so "Pending" and "pending" both
// resolve to StatusPending.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(s))
	if _, ok := validTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Display renders the status with a capitalized first letter, matching the
// remote store convention.
func (s Status) Display() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// CanTransitionTo checks whether the status may move to the target.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionError returns the appropriate error for an invalid transition.
func (s Status) TransitionError(target Status) error {
	switch s {
	case StatusCancelled:
		return ErrOrderCancelled
	case StatusDelivered:
		return ErrOrderDelivered
	default:
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransit, s, target)
	}
}

// Item is one product-and-quantity pair within an order.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// ShippingAddress is the shipping detail captured at checkout. The JSON
// field names match the client form shape, which is what gets stored in the
// shipping_address column.
type ShippingAddress struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
}

// Request is the immutable order-creation payload built from cart contents
// at submission time.
type Request struct {
	UserID          string          `json:"user_id"`
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

// Order is the persisted order record. Immutable to the client after
// creation except for status reads.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Status          Status          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Store is the order persistence interface.
type Store interface {
	// Create persists the order header and all line items, returning the
	// stored order. Header and items commit together or not at all.
	Create(ctx context.Context, req Request) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
