package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Simulator stands in for a real payment gateway. It validates the amount,
// waits out a simulated processing delay, and succeeds. Context cancellation
// aborts the attempt with the context's error.
type Simulator struct {
	name  string
	delay time.Duration
}

func NewCardSimulator(delay time.Duration) *Simulator {
	return &Simulator{name: "card", delay: delay}
}

func NewWalletSimulator(delay time.Duration) *Simulator {
	return &Simulator{name: "wallet", delay: delay}
}

// NewCashOnDelivery completes immediately; nothing is charged until delivery.
func NewCashOnDelivery() *Simulator {
	return &Simulator{name: "cash_on_delivery"}
}

func (s *Simulator) Name() string { return s.name }

func (s *Simulator) Charge(ctx context.Context, amount decimal.Decimal) (*Receipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &Receipt{
		TransactionID: uuid.New().String(),
		Method:        s.name,
		Amount:        amount,
		ProcessedAt:   time.Now(),
	}, nil
}
