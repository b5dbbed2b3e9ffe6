package order

import (
	"fmt"
	"time"
)

// Order is a completed purchase: a snapshot of the cart contents and the
// before/after totals at completion time.
type Order struct {
	OrderID             int            `json:"orderID"`
	OrderNumber         string         `json:"orderNumber"`
	UserID              int            `json:"userID"`
	Cart                map[string]int `json:"cart"`
	TotalBeforeDiscount int            `json:"totalBeforeDiscount"`
	TotalAfterDiscount  int            `json:"totalAfterDiscount"`
	CouponCode          string         `json:"couponCode,omitempty"`
	CreatedAt           string         `json:"createdAt"`
}

// NewOrderNumber formats an order number from the completion timestamp.
// No collision handling; the caller supplies the clock.
func NewOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}
