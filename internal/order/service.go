package order

import (
	"errors"
	"time"

	"github.com/cleancart/cart-backend/internal/cart"
)

var ErrEmptyCart = errors.New("empty cart")

// Service completes orders: it snapshots the cart totals, persists the order,
// then empties the cart and drops the coupon selection.
type Service struct {
	repo  Repository
	carts *cart.Service
}

func NewService(repo Repository, carts *cart.Service) *Service {
	return &Service{repo: repo, carts: carts}
}

// Complete turns the user's current cart into an order. The cart and the
// selected coupon are cleared only after the order is stored.
func (s *Service) Complete(userID int) (Order, error) {
	lines, err := s.carts.Get(userID)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	selected, err := s.carts.SelectedCoupon(userID)
	if err != nil {
		return Order{}, err
	}

	totals := cart.Totals(lines, selected)
	contents := make(map[string]int, len(lines))
	for _, l := range lines {
		contents[l.Product.ID] = l.Quantity
	}

	completedAt := time.Now()
	ord := Order{
		OrderNumber:         NewOrderNumber(completedAt),
		UserID:              userID,
		Cart:                contents,
		TotalBeforeDiscount: totals.TotalBeforeDiscount,
		TotalAfterDiscount:  totals.TotalAfterDiscount,
		CreatedAt:           completedAt.UTC().Format(time.RFC3339),
	}
	if selected != nil {
		ord.CouponCode = selected.Code
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}
	if err := s.carts.Clear(userID); err != nil {
		return Order{}, err
	}
	return created, nil
}

// ListByUser returns a user's completed orders.
func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}
