package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// Receipt is the result of a successful charge.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

// Method is the uniform payment contract. Charge returns exactly one
// outcome per attempt: a receipt on success or an error on failure.
type Method interface {
	Name() string
	Charge(ctx context.Context, amount decimal.Decimal) (*Receipt, error)
}

// Registry resolves payment methods by name.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Method
}

func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[string]Method)}
	for _, m := range methods {
		r.Register(m)
	}
	return r
}

func (r *Registry) Register(m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[m.Name()] = m
}

func (r *Registry) Resolve(name string) (Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return m, nil
}

// Names lists the registered method names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}
