package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crystal-shop/internal/order"
)

type fakeSender struct {
	sent []order.PlacedEvent
	err  error
}

func (f *fakeSender) SendOrderConfirmation(ev order.PlacedEvent) error {
	f.sent = append(f.sent, ev)
	return f.err
}

func envelopeFor(t *testing.T, eventType string, event any) []byte {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)
	raw, err := json.Marshal(map[string]any{
		"event_type": eventType,
		"data":       json.RawMessage(data),
	})
	require.NoError(t, err)
	return raw
}

func placedEvent() order.PlacedEvent {
	return order.PlacedEvent{
		OrderID:       "order-1",
		UserID:        "user-1",
		CustomerName:  "Luna Vega",
		CustomerEmail: "luna@example.com",
		TotalAmount:   decimal.RequireFromString("51.98"),
	}
}

func TestHandler_HandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("sends confirmation for OrderPlaced", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewHandler(sender)

		err := h.HandleEvent(ctx, []byte("order-1"), envelopeFor(t, order.EventOrderPlaced, placedEvent()))

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "luna@example.com", sender.sent[0].CustomerEmail)
		assert.Equal(t, "order-1", sender.sent[0].OrderID)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewHandler(sender)

		err := h.HandleEvent(ctx, []byte("k"), envelopeFor(t, "ProductUpdated", map[string]string{"id": "prod-1"}))

		require.NoError(t, err)
		assert.Empty(t, sender.sent)
	})

	t.Run("skips orders without a customer email", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewHandler(sender)

		ev := placedEvent()
		ev.CustomerEmail = ""
		err := h.HandleEvent(ctx, []byte("order-1"), envelopeFor(t, order.EventOrderPlaced, ev))

		require.NoError(t, err)
		assert.Empty(t, sender.sent)
	})

	t.Run("reports malformed payloads", func(t *testing.T) {
		h := NewHandler(&fakeSender{})

		err := h.HandleEvent(ctx, []byte("k"), []byte("{not json"))
		assert.Error(t, err)
	})

	t.Run("propagates sender failures for retry", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("smtp unreachable")}
		h := NewHandler(sender)

		err := h.HandleEvent(ctx, []byte("order-1"), envelopeFor(t, order.EventOrderPlaced, placedEvent()))
		assert.Error(t, err)
	})
}
