// Package messages holds the fixed user-facing message templates. Handlers
// pick a template from the outcome of a core call; the core itself never
// formats or reports anything.
package messages

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ProductAdded    = "Product added."
	ProductUpdated  = "Product updated."
	ProductDeleted  = "Product deleted."
	CouponAdded     = "Coupon added."
	CouponDeleted   = "Coupon deleted."
	CouponApplied   = "Coupon applied."
	ItemAddedToCart = "Added to cart."

	StockInsufficient = "Insufficient stock!"

	CouponUnavailable         = "This coupon cannot be used."
	CouponMinPurchaseRequired = "Percentage coupons require a purchase of 10,000 or more."

	DuplicateCouponCode = "A coupon with this code already exists."
	InvalidCouponCode   = "Coupon code must be 4-12 uppercase letters or digits."
)

// StockExceeded names the per-product limit for a rejected add or update.
func StockExceeded(maxStock int) string {
	return fmt.Sprintf("Only %d in stock.", maxStock)
}

// OrderCompleted confirms an order with its generated number.
func OrderCompleted(orderNumber string) string {
	return fmt.Sprintf("Order completed. Order number: %s", orderNumber)
}

// FormatAdminPrice renders a price for the admin screens, e.g. "1,000 won".
func FormatAdminPrice(price int) string {
	return groupDigits(price) + " won"
}

// FormatUserPrice renders a price for the shop screens, e.g. "₩1,000".
func FormatUserPrice(price int) string {
	return "₩" + groupDigits(price)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
