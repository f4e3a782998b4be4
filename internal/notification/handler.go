package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/crystal-shop/internal/order"
)

// Sender delivers order confirmation emails.
type Sender interface {
	SendOrderConfirmation(ev order.PlacedEvent) error
}

// envelope is the event wrapper published to Kafka.
type envelope struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// Handler processes order events and sends notifications. Failures are
// logged but never propagated back to checkout; the order itself is
// already durable by the time an event reaches us.
type Handler struct {
	sender Sender
}

func NewHandler(sender Sender) *Handler {
	return &Handler{sender: sender}
}

// HandleEvent processes an event from Kafka.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var env envelope
	if err := json.Unmarshal(value, &env); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	if env.EventType != order.EventOrderPlaced {
		return nil
	}
	return h.handleOrderPlaced(env.Data)
}

func (h *Handler) handleOrderPlaced(data json.RawMessage) error {
	var ev order.PlacedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, user %s", ev.OrderID, ev.UserID)

	if ev.CustomerEmail == "" {
		log.Printf("[Notifier] No customer email on order %s, skipping", ev.OrderID)
		return nil
	}

	if err := h.sender.SendOrderConfirmation(ev); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", ev.CustomerEmail, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", ev.CustomerEmail, ev.OrderID)
	return nil
}
