package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/crystal-shop/internal/order"
)

// Service handles email sending via SMTP.
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends an order confirmation email for a placed
// order. Callers treat failures as non-critical; the order is already
// durably created by the time this runs.
func (s *Service) SendOrderConfirmation(ev order.PlacedEvent) error {
	shortID := ev.OrderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	subject := fmt.Sprintf("Order confirmation #%s - thank you for your purchase", shortID)

	items := make([]OrderItem, len(ev.Items))
	for i, item := range ev.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	body := BuildOrderConfirmationBody(ev.CustomerName, ev.OrderID, ev.TotalAmount, items)
	return s.send(ev.CustomerEmail, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
