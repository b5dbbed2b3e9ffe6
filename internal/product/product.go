package product

import (
	"fmt"
	"strings"
	"time"
)

// Product represents a catalog product. IDs are opaque strings generated at
// creation time; cart operations only ever read products, catalog edits are
// the single mutation path.
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Price         int        `json:"price"`
	Stock         int        `json:"stock"`
	Description   string     `json:"description,omitempty"`
	Discounts     []Discount `json:"discounts"`
	IsRecommended bool       `json:"isRecommended,omitempty"`
}

// Discount is a quantity tier: lines with at least Quantity units qualify for
// Rate. Tiers are kept in insertion order; order carries no precedence, the
// pricing code scans all tiers and takes the best qualifying rate.
type Discount struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Stock status labels used by the shop UI.
const (
	StockSoldOut = "soldOut"
	StockLow     = "lowStock"
	StockIn      = "inStock"
)

// StockStatus classifies a stock count for display.
func StockStatus(stock int) string {
	if stock <= 0 {
		return StockSoldOut
	}
	if stock <= 5 {
		return StockLow
	}
	return StockIn
}

// NewProductID derives a product id from a creation timestamp.
func NewProductID(t time.Time) string {
	return fmt.Sprintf("p%d", t.UnixMilli())
}

// DefaultDiscount is the tier pre-filled when an admin adds a discount row.
func DefaultDiscount() Discount {
	return Discount{Quantity: 10, Rate: 0.1}
}

// IsValidDiscount accepts tiers with a positive quantity and a rate in (0, 1].
func IsValidDiscount(d Discount) bool {
	return d.Quantity > 0 && d.Rate > 0 && d.Rate <= 1
}

// FilterValidDiscounts drops malformed tiers from a form submission.
func FilterValidDiscounts(discounts []Discount) []Discount {
	out := make([]Discount, 0, len(discounts))
	for _, d := range discounts {
		if IsValidDiscount(d) {
			out = append(out, d)
		}
	}
	return out
}

// FindByID returns the product with the given id, or false if absent.
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FilterBySearchTerm matches the term against product names and descriptions,
// case-insensitively. A blank term returns the input unchanged.
func FilterBySearchTerm(products []Product, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}
