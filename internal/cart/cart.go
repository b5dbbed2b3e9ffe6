// Package cart holds the pricing core: pure functions over an ordered list of
// cart lines, plus the session service and storage around them. The pure
// functions never mutate their inputs; every mutation returns a fresh slice
// and the calling layer swaps state wholesale.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/cleancart/cart-backend/internal/coupon"
	"github.com/cleancart/cart-backend/internal/product"
)

// Line pairs a product snapshot with a quantity. A cart holds at most one
// line per product id; adding an already-present product increments its
// quantity instead of appending a duplicate.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

const (
	// bulkPurchaseQuantity is the single-line quantity that unlocks the
	// cart-wide bonus rate.
	bulkPurchaseQuantity = 10
	bulkPurchaseBonus    = 0.05
	// maxDiscountRate caps the per-line rate no matter how tiers and the
	// bulk bonus stack.
	maxDiscountRate = 0.5
)

// MaxApplicableDiscount returns the discount rate for a line: the best
// qualifying tier rate, plus the bulk bonus when any line in the cart has
// reached the bulk quantity, capped at 50%.
func MaxApplicableDiscount(line Line, allLines []Line) float64 {
	base := 0.0
	for _, d := range line.Product.Discounts {
		if line.Quantity >= d.Quantity && d.Rate > base {
			base = d.Rate
		}
	}

	for _, l := range allLines {
		if l.Quantity >= bulkPurchaseQuantity {
			base += bulkPurchaseBonus
			break
		}
	}

	if base > maxDiscountRate {
		return maxDiscountRate
	}
	return base
}

// RemainingStock is the product's stock minus whatever the cart already
// holds. Callers must treat anything <= 0 as "cannot add more".
func RemainingStock(p product.Product, lines []Line) int {
	if l, ok := FindLine(lines, p.ID); ok {
		return p.Stock - l.Quantity
	}
	return p.Stock
}

// FindLine returns the line for the given product id, or false if absent.
func FindLine(lines []Line, productID string) (Line, bool) {
	for _, l := range lines {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// AddLine increments the existing line for the product, keeping its position,
// or appends a new line at the end. The input slice is left untouched.
func AddLine(lines []Line, p product.Product, qty int) []Line {
	out := make([]Line, len(lines), len(lines)+1)
	copy(out, lines)
	for i, l := range out {
		if l.Product.ID == p.ID {
			out[i].Quantity += qty
			return out
		}
	}
	return append(out, Line{Product: p, Quantity: qty})
}

// RemoveLine drops the line for the product id; a miss returns an equivalent
// cart unchanged.
func RemoveLine(lines []Line, productID string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	return out
}

// SetLineQuantity replaces the line's quantity; qty <= 0 removes the line.
// Stock limits are the caller's responsibility, checked before calling.
func SetLineQuantity(lines []Line, productID string, qty int) []Line {
	if qty <= 0 {
		return RemoveLine(lines, productID)
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i, l := range out {
		if l.Product.ID == productID {
			out[i].Quantity = qty
		}
	}
	return out
}

// LineTotal is price x quantity x (1 - discount), rounded once after the
// discount is applied, never per unit.
func LineTotal(line Line, allLines []Line) int {
	rate := MaxApplicableDiscount(line, allLines)
	total := decimal.NewFromInt(int64(line.Product.Price)).
		Mul(decimal.NewFromInt(int64(line.Quantity))).
		Mul(decimal.NewFromFloat(1 - rate))
	return int(total.Round(0).IntPart())
}

// Subtotal is the undiscounted sum over all lines.
func Subtotal(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Product.Price * l.Quantity
	}
	return total
}

// DiscountedTotal sums the per-line totals after item discounts, before any
// coupon.
func DiscountedTotal(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += LineTotal(l, lines)
	}
	return total
}

// TotalItemCount is the unit count across all lines (the cart badge number).
func TotalItemCount(lines []Line) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// CartTotals is the before/after pair the UI renders. After is never above
// before; discounts only reduce.
type CartTotals struct {
	TotalBeforeDiscount int `json:"totalBeforeDiscount"`
	TotalAfterDiscount  int `json:"totalAfterDiscount"`
}

// Totals composes the cart arithmetic with the selected coupon, if any.
func Totals(lines []Line, selected *coupon.Coupon) CartTotals {
	before := Subtotal(lines)
	after := DiscountedTotal(lines)
	if selected != nil {
		after = coupon.ApplyDiscount(after, *selected)
	}
	return CartTotals{TotalBeforeDiscount: before, TotalAfterDiscount: after}
}
