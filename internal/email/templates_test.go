package email

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildOrderConfirmationBody(t *testing.T) {
	items := []OrderItem{
		{ProductID: "prod-amethyst", Name: "Amethyst Cluster", Quantity: 2, Price: decimal.RequireFromString("25.99")},
		{ProductID: "prod-rose-quartz", Quantity: 1, Price: decimal.RequireFromString("12.50")},
	}

	body := BuildOrderConfirmationBody("Luna Vega", "order-1234", decimal.RequireFromString("64.48"), items)

	assert.Contains(t, body, "Luna Vega")
	assert.Contains(t, body, "order-1234")
	assert.Contains(t, body, "Amethyst Cluster")
	assert.Contains(t, body, "$25.99")
	assert.Contains(t, body, "$51.98", "line subtotal is quantity times unit price")
	assert.Contains(t, body, "$64.48")
	// An item without a name falls back to its product id.
	assert.Contains(t, body, "prod-rose-quartz")
}
