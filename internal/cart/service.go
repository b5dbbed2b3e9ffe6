package cart

import (
	"strings"
	"time"

	"github.com/cleancart/cart-backend/internal/coupon"
	"github.com/cleancart/cart-backend/internal/product"
)

// Service orchestrates session carts: it owns the load-compute-swap cycle
// around the pure functions in this package. State is read, transformed, and
// written back whole; nothing is mutated in place.
type Service struct {
	repo     Repository
	products product.Repository
	coupons  coupon.Repository
}

func NewService(repo Repository, products product.Repository, coupons coupon.Repository) *Service {
	return &Service{repo: repo, products: products, coupons: coupons}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Get returns the user's cart with product snapshots attached. Lines whose
// product has been removed from the catalog are dropped.
func (s *Service) Get(userID int) ([]Line, error) {
	st, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(st)
}

func (s *Service) hydrate(st State) ([]Line, error) {
	ids := make([]string, 0, len(st.Items))
	for _, item := range st.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]Line, 0, len(st.Items))
	for _, item := range st.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: item.Quantity})
	}
	return lines, nil
}

func toItems(lines []Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return items
}

// AddToCart adds qty units of a product. The add is rejected when no stock
// remains (StockInsufficient) or when the resulting line would pass the
// product's stock (StockExceeded); in both cases the stored cart stands.
func (s *Service) AddToCart(userID int, productID string, qty int) (Result, error) {
	if qty <= 0 {
		qty = 1
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return Result{}, err
	}
	st, err := s.repo.Get(userID)
	if err != nil {
		return Result{}, err
	}
	lines, err := s.hydrate(st)
	if err != nil {
		return Result{}, err
	}

	if RemainingStock(p, lines) <= 0 {
		return Result{Kind: StockInsufficient, Lines: lines}, nil
	}

	next := AddLine(lines, p, qty)
	if added, ok := FindLine(next, p.ID); ok && added.Quantity > p.Stock {
		return Result{Kind: StockExceeded, Lines: lines, MaxStock: p.Stock}, nil
	}

	st.Items = toItems(next)
	if err := s.repo.Save(userID, st, now()); err != nil {
		return Result{}, err
	}
	return Result{Kind: Ok, Lines: next}, nil
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line; a
// quantity above stock is rejected in full with the limit reported, never
// clamped.
func (s *Service) UpdateQuantity(userID int, productID string, qty int) (Result, error) {
	st, err := s.repo.Get(userID)
	if err != nil {
		return Result{}, err
	}
	lines, err := s.hydrate(st)
	if err != nil {
		return Result{}, err
	}

	if qty <= 0 {
		next := RemoveLine(lines, productID)
		st.Items = toItems(next)
		if err := s.repo.Save(userID, st, now()); err != nil {
			return Result{}, err
		}
		return Result{Kind: Ok, Lines: next}, nil
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Result{}, err
	}
	if qty > p.Stock {
		return Result{Kind: StockExceeded, Lines: lines, MaxStock: p.Stock}, nil
	}

	next := SetLineQuantity(lines, productID, qty)
	st.Items = toItems(next)
	if err := s.repo.Save(userID, st, now()); err != nil {
		return Result{}, err
	}
	return Result{Kind: Ok, Lines: next}, nil
}

// RemoveFromCart drops the line for the product id.
func (s *Service) RemoveFromCart(userID int, productID string) ([]Line, error) {
	st, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	lines, err := s.hydrate(st)
	if err != nil {
		return nil, err
	}
	next := RemoveLine(lines, productID)
	st.Items = toItems(next)
	if err := s.repo.Save(userID, st, now()); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear empties the cart and drops the coupon selection.
func (s *Service) Clear(userID int) error {
	return s.repo.Save(userID, State{Items: []Item{}}, now())
}

// ApplyCoupon selects a coupon for the cart. Percentage coupons are gated on
// the pre-coupon discounted total; a failed gate leaves the prior selection
// untouched.
func (s *Service) ApplyCoupon(userID int, code string) (Result, error) {
	cpn, err := s.coupons.GetByCode(strings.ToUpper(code))
	if err != nil {
		return Result{}, err
	}
	st, err := s.repo.Get(userID)
	if err != nil {
		return Result{}, err
	}
	lines, err := s.hydrate(st)
	if err != nil {
		return Result{}, err
	}

	if v := coupon.ValidateApplication(DiscountedTotal(lines), cpn); !v.Valid {
		return Result{Kind: CouponUnusable, Lines: lines, Message: v.Message}, nil
	}

	st.CouponCode = cpn.Code
	if err := s.repo.Save(userID, st, now()); err != nil {
		return Result{}, err
	}
	return Result{Kind: Ok, Lines: lines}, nil
}

// ClearCoupon deselects whatever coupon is active.
func (s *Service) ClearCoupon(userID int) error {
	st, err := s.repo.Get(userID)
	if err != nil {
		return err
	}
	st.CouponCode = ""
	return s.repo.Save(userID, st, now())
}

// SelectedCoupon returns the active coupon, or nil when none is selected or
// the coupon has since been deleted.
func (s *Service) SelectedCoupon(userID int) (*coupon.Coupon, error) {
	st, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	if st.CouponCode == "" {
		return nil, nil
	}
	cpn, err := s.coupons.GetByCode(st.CouponCode)
	if err == coupon.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cpn, nil
}

// CartTotals computes the before/after pair for the user's cart and selected
// coupon.
func (s *Service) CartTotals(userID int) (CartTotals, error) {
	lines, err := s.Get(userID)
	if err != nil {
		return CartTotals{}, err
	}
	selected, err := s.SelectedCoupon(userID)
	if err != nil {
		return CartTotals{}, err
	}
	return Totals(lines, selected), nil
}
