package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
)

// PaymentGateway is the payment collaborator the checkout hands off to.
// Consumers define this interface, not the gateway implementation.
type PaymentGateway interface {
	IssueLink(ctx context.Context, order *domain.Order) (string, error)
	Status(ctx context.Context, orderID string) (string, error)
}

type OrderService struct {
	cart     *CartService
	orders   repository.OrderRepository
	payments PaymentGateway
	logger   *slog.Logger
	now      func() time.Time
}

func NewOrderService(cart *CartService, orders repository.OrderRepository, payments PaymentGateway, logger *slog.Logger) *OrderService {
	return &OrderService{
		cart:     cart,
		orders:   orders,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// Checkout converts the session's cart into a persisted order and returns
// a payment link for it. An empty cart halts before any side effect and
// returns ErrCartEmpty.
//
// The cart is cleared before the order is persisted; a crash between the
// two loses the cart contents with no order recorded. No compensating
// restore is attempted.
func (s *OrderService) Checkout(ctx context.Context, sessionKey string, recipient domain.Recipient) (string, error) {
	if err := validateRecipient(recipient); err != nil {
		return "", err
	}

	snapshot, err := s.cart.Snapshot(ctx, sessionKey)
	if err != nil {
		return "", err
	}
	if snapshot == nil {
		return "", ErrCartEmpty
	}

	order := &domain.Order{
		Items:      snapshot.Items,
		Status:     domain.OrderStatusUnpaid,
		CreatedAt:  s.now(),
		Recipient:  recipient,
		TotalPrice: snapshot.GrandTotal,
	}

	if err := s.cart.Clear(ctx, sessionKey); err != nil {
		return "", err
	}

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		// The cart is already gone at this point.
		s.logger.ErrorContext(ctx, "order persistence failed after cart clear",
			"session_key", sessionKey, "total", order.TotalPrice)
		return "", fmt.Errorf("persist order: %w", err)
	}
	order.ID = id

	link, err := s.payments.IssueLink(ctx, order)
	if err != nil {
		return "", fmt.Errorf("issue payment link for order %s: %w", id, err)
	}

	return link, nil
}

func (s *OrderService) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Order(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// VerifyPayment asks the gateway for the payment state of an order.
func (s *OrderService) VerifyPayment(ctx context.Context, orderID string) (string, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return "", err
	}
	return s.payments.Status(ctx, orderID)
}

func validateRecipient(r domain.Recipient) error {
	verr := newValidationError()
	if strings.TrimSpace(r.FirstName) == "" {
		verr.add("first_name", "is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		verr.add("last_name", "is required")
	}
	if strings.TrimSpace(r.City) == "" {
		verr.add("city", "is required")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		verr.add("zip_code", "is required")
	}
	return verr.orNil()
}
