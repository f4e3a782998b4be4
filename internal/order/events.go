package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

// EventItem is the per-item payload carried in order events.
type EventItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PlacedEvent is published after an order has been durably created. The
// notifier consumes it to send the confirmation email, so it carries the
// customer contact details alongside the order summary.
type PlacedEvent struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []EventItem     `json:"items"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// NewPlacedEvent builds the event payload for a stored order.
func NewPlacedEvent(o *Order) PlacedEvent {
	items := make([]EventItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = EventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		}
	}
	return PlacedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		CustomerName:  o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName,
		CustomerEmail: o.ShippingAddress.Email,
		TotalAmount:   o.TotalAmount,
		Items:         items,
		PlacedAt:      o.CreatedAt,
	}
}
