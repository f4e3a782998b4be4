package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrSubmissionInFlight     = errors.New("an order submission is already in progress")
	ErrEmptyCart              = errors.New("cart is empty")
)

// ValidationError carries every field violation found in one validation
// pass, keyed by the form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// OrderCreationError wraps a remote-store failure during order creation. The
// underlying message is preserved for diagnostics.
type OrderCreationError struct {
	Err error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *OrderCreationError) Unwrap() error { return e.Err }

// PaymentError wraps a failure reported by the selected payment method.
type PaymentError struct {
	Method string
	Err    error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment via %s failed: %v", e.Method, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }
