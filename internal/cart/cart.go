package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// LineItem is one product-and-quantity pair in a cart.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// State is the full serializable cart state. TotalItemCount and TotalAmount
// are derived from Items and recomputed on every mutation; they are never
// written independently.
type State struct {
	Items          []LineItem      `json:"items"`
	TotalItemCount int             `json:"total_item_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	IsVisible      bool            `json:"is_visible"`
}

func emptyState() State {
	return State{
		Items:       []LineItem{},
		TotalAmount: decimal.Zero,
	}
}

// Cart holds one shopper's intended purchase. All mutations go through the
// defined operations; the mutex makes each operation atomic, so totals are
// always in sync with items when an operation returns.
//
// Persistence is best-effort: after every mutation the full state is written
// through the Store, and a write failure is logged without rolling back the
// in-memory state.
type Cart struct {
	mu     sync.Mutex
	userID string
	store  Store
	state  State
}

// New returns an empty cart for the given user.
func New(userID string, store Store) *Cart {
	return &Cart{
		userID: userID,
		store:  store,
		state:  emptyState(),
	}
}

// Hydrate loads the persisted cart for a user. Missing or malformed stored
// data falls back to an empty cart and is never propagated as an error.
func Hydrate(ctx context.Context, userID string, store Store) *Cart {
	c := New(userID, store)
	if store == nil {
		return c
	}

	raw, err := store.Load(ctx, userID)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("[Cart] Failed to load cart for user %s: %v", userID, err)
		}
		return c
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// Corrupt persisted data is discarded, not surfaced.
		log.Printf("[Cart] Discarding malformed cart data for user %s: %v", userID, err)
		return c
	}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	c.state = state
	c.recomputeTotals()
	return c
}

// AddItem adds quantity units of the item. If an item with the same product
// id already exists its quantity is incremented; no duplicate rows are
// created. Quantities below one are treated as one.
func (c *Cart) AddItem(ctx context.Context, item LineItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.state.Items {
		if c.state.Items[i].ProductID == item.ProductID {
			c.state.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		c.state.Items = append(c.state.Items, item)
	}

	c.recomputeTotals()
	c.persist(ctx)
}

// RemoveItem deletes the line item with the given product id. Removing an
// absent id is a no-op, not an error.
func (c *Cart) RemoveItem(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
	c.recomputeTotals()
	c.persist(ctx)
}

// SetQuantity overwrites the quantity for a product id. A quantity of zero
// or below removes the item entirely. Absent ids are a no-op.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
	} else {
		for i := range c.state.Items {
			if c.state.Items[i].ProductID == productID {
				c.state.Items[i].Quantity = quantity
				break
			}
		}
	}

	c.recomputeTotals()
	c.persist(ctx)
}

// Clear resets items and totals to empty. The visibility flag is preserved.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.state.IsVisible
	c.state = emptyState()
	c.state.IsVisible = visible
	c.persist(ctx)
}

// ToggleVisibility flips the UI-open flag. Items and totals are untouched.
func (c *Cart) ToggleVisibility(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.IsVisible = !c.state.IsVisible
	c.persist(ctx)
}

// Snapshot returns a deep copy of the current state.
func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.Items = make([]LineItem, len(c.state.Items))
	copy(state.Items, c.state.Items)
	return state
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.state.Items {
		if c.state.Items[i].ProductID == productID {
			c.state.Items = append(c.state.Items[:i], c.state.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) recomputeTotals() {
	count := 0
	total := decimal.Zero
	for _, item := range c.state.Items {
		count += item.Quantity
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.state.TotalItemCount = count
	c.state.TotalAmount = total
}

func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}

	raw, err := json.Marshal(c.state)
	if err != nil {
		log.Printf("[Cart] Failed to marshal cart for user %s: %v", c.userID, err)
		return
	}
	if err := c.store.Save(ctx, c.userID, raw); err != nil {
		// The local cart is a cache, not a source of truth; keep the
		// in-memory state and move on.
		log.Printf("[Cart] Failed to persist cart for user %s: %v", c.userID, err)
	}
}
