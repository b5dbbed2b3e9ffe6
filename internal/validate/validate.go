package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Limits for admin form fields. Prices are whole currency units.
const (
	MaxStock      = 9999
	MaxPercentage = 100
	MaxAmount     = 100000
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

// Result reports whether a value is in range. CorrectedValue holds the
// nearest legal boundary so callers can auto-correct form state while still
// surfacing the error.
type Result struct {
	IsValid        bool   `json:"isValid"`
	Error          string `json:"error,omitempty"`
	CorrectedValue int    `json:"correctedValue"`
}

func ok(v int) Result {
	return Result{IsValid: true, CorrectedValue: v}
}

// Price requires a strictly positive price. Zero and negative values are
// corrected to 0, which is itself invalid.
func Price(price int) Result {
	if price <= 0 {
		return Result{Error: "Price must be greater than 0", CorrectedValue: 0}
	}
	return ok(price)
}

// Stock requires stock within [0, 9999].
func Stock(stock int) Result {
	if stock < 0 {
		return Result{Error: "Stock must be 0 or more", CorrectedValue: 0}
	}
	if stock > MaxStock {
		return Result{Error: "Stock cannot exceed 9999", CorrectedValue: MaxStock}
	}
	return ok(stock)
}

// DiscountValue checks a coupon or tier value against the range for its
// discount type: [0, 100] for "percentage", [0, 100000] for "amount".
func DiscountValue(value int, discountType string) Result {
	if discountType == "percentage" {
		if value > MaxPercentage {
			return Result{Error: "Discount rate cannot exceed 100%", CorrectedValue: MaxPercentage}
		}
		if value < 0 {
			return Result{Error: "Discount rate must be 0 or more", CorrectedValue: 0}
		}
		return ok(value)
	}
	if value > MaxAmount {
		return Result{Error: "Discount amount cannot exceed 100,000", CorrectedValue: MaxAmount}
	}
	if value < 0 {
		return Result{Error: "Discount amount must be 0 or more", CorrectedValue: 0}
	}
	return ok(value)
}

// CouponCode reports whether code is 4-12 uppercase letters or digits.
// This is only a format gate; duplicate checking is done against the store.
func CouponCode(code string) bool {
	return couponCodePattern.MatchString(code)
}

// ExtractNumbers strips every non-digit rune from value.
func ExtractNumbers(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SafeParseInt parses value as a base-10 integer, falling back to def when
// the input is not a valid number.
func SafeParseInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}
