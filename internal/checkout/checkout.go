package checkout

import (
	"context"
	"log"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/example/crystal-shop/internal/cart"
	"github.com/example/crystal-shop/internal/order"
	"github.com/example/crystal-shop/internal/payment"
)

// EventPublisher publishes order lifecycle events. Publishing is
// best-effort from the submission flow's point of view.
type EventPublisher interface {
	Publish(ctx context.Context, key, eventType string, event any) error
}

// ConfirmationSender delivers the order confirmation email. The submission
// flow only ever observes its result for logging.
type ConfirmationSender interface {
	SendOrderConfirmation(ev order.PlacedEvent) error
}

// Service runs the order submission flow: validate shipping input, build an
// immutable order request from the cart, charge the selected payment method,
// persist the order, then reconcile the cart. The in-flight set guarantees
// at most one order per submission gesture, so a double-click cannot create
// two orders.
type Service struct {
	orders   order.Store
	carts    *cart.Service
	payments *payment.Registry
	events   EventPublisher
	email    ConfirmationSender
	validate *validatorv10.Validate

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewService(orders order.Store, carts *cart.Service, payments *payment.Registry, events EventPublisher, email ConfirmationSender) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		payments: payments,
		events:   events,
		email:    email,
		validate: newValidator(),
		inFlight: make(map[string]struct{}),
	}
}

// Submit runs one submission attempt end to end and returns the created
// order. The cart is cleared only after the store has confirmed the order
// exists; any earlier failure leaves the cart untouched.
func (s *Service) Submit(ctx context.Context, userID string, addr order.ShippingAddress, methodName string) (*order.Order, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	// The guard is taken synchronously before any asynchronous work and
	// released when the attempt finishes, whatever the outcome.
	if !s.acquire(userID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(userID)

	at := newAttempt(userID)

	at.to(stateValidating)
	if verr := s.validateShipping(addr); verr != nil {
		at.reject(verr)
		return nil, verr
	}

	userCart := s.carts.ForUser(ctx, userID)
	snap := userCart.Snapshot()
	if len(snap.Items) == 0 {
		at.reject(ErrEmptyCart)
		return nil, ErrEmptyCart
	}

	method, err := s.payments.Resolve(methodName)
	if err != nil {
		at.reject(err)
		return nil, err
	}

	req := buildRequest(userID, snap, addr, methodName)

	at.to(stateSubmitting)
	if _, err := method.Charge(ctx, req.TotalAmount); err != nil {
		perr := &PaymentError{Method: methodName, Err: err}
		at.fail(perr)
		return nil, perr
	}

	o, err := s.orders.Create(ctx, req)
	if err != nil {
		oerr := &OrderCreationError{Err: err}
		at.fail(oerr)
		return nil, oerr
	}
	at.to(stateOrderCreated)

	// The order is durable from here on. Everything below is best-effort
	// and must never fail the submission.
	ev := order.NewPlacedEvent(o)
	if s.events != nil {
		if err := s.events.Publish(ctx, o.ID, order.EventOrderPlaced, ev); err != nil {
			log.Printf("[Checkout] Failed to publish OrderPlaced for order %s: %v", o.ID, err)
		}
	}
	if s.email != nil {
		go func() {
			if err := s.email.SendOrderConfirmation(ev); err != nil {
				log.Printf("[Checkout] Failed to send confirmation email for order %s: %v", o.ID, err)
			}
		}()
	}
	at.to(stateEmailAttempted)

	userCart.Clear(ctx)
	at.to(stateDone)

	return o, nil
}

func buildRequest(userID string, snap cart.State, addr order.ShippingAddress, methodName string) order.Request {
	items := make([]order.Item, len(snap.Items))
	for i, li := range snap.Items {
		items[i] = order.Item{
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			ImageURL:  li.ImageURL,
		}
	}
	return order.Request{
		UserID:          userID,
		Items:           items,
		TotalAmount:     snap.TotalAmount,
		ShippingAddress: addr,
		PaymentMethod:   methodName,
	}
}

func (s *Service) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *Service) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, userID)
}
