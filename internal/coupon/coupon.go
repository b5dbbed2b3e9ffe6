package coupon

import (
	"github.com/shopspring/decimal"

	"github.com/cleancart/cart-backend/internal/messages"
)

// Discount types a coupon can carry.
const (
	TypeAmount     = "amount"
	TypePercentage = "percentage"
)

// MinPercentageTotal is the discounted cart total a percentage coupon
// requires at selection time.
const MinPercentageTotal = 10000

// Coupon is an order-level discount keyed by its uppercase code.
type Coupon struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	DiscountType  string `json:"discountType"`
	DiscountValue int    `json:"discountValue"`
}

// IsUsable reports whether a coupon of the given type may be selected against
// the current discounted total. Amount coupons are always usable; percentage
// coupons need a total of at least 10,000. The gate runs once at selection
// time and is not re-checked as the cart changes afterward.
func IsUsable(discountedTotal int, discountType string) bool {
	if discountType == TypePercentage {
		return discountedTotal >= MinPercentageTotal
	}
	return true
}

// ApplyDiscount returns the total after the coupon. Amount coupons floor at
// zero and never go negative; percentage coupons round once after applying
// the rate.
func ApplyDiscount(total int, c Coupon) int {
	if c.DiscountType == TypeAmount {
		if total < c.DiscountValue {
			return 0
		}
		return total - c.DiscountValue
	}
	discounted := decimal.NewFromInt(int64(total)).
		Mul(decimal.NewFromInt(int64(100 - c.DiscountValue))).
		Div(decimal.NewFromInt(100))
	return int(discounted.Round(0).IntPart())
}

// Validation is the outcome of a selection attempt.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateApplication wraps IsUsable with the fixed rejection message for the
// coupon's type. An invalid selection must be rejected outright, leaving the
// previously selected coupon in place.
func ValidateApplication(discountedTotal int, c Coupon) Validation {
	if IsUsable(discountedTotal, c.DiscountType) {
		return Validation{Valid: true}
	}
	if c.DiscountType == TypePercentage {
		return Validation{Message: messages.CouponMinPurchaseRequired}
	}
	return Validation{Message: messages.CouponUnavailable}
}

// IsDuplicateCode reports whether code already exists in the list.
func IsDuplicateCode(coupons []Coupon, code string) bool {
	_, ok := FindByCode(coupons, code)
	return ok
}

// FindByCode returns the coupon with the given code, or false if absent.
func FindByCode(coupons []Coupon, code string) (Coupon, bool) {
	for _, c := range coupons {
		if c.Code == code {
			return c, true
		}
	}
	return Coupon{}, false
}
