package cart

// Kind classifies the outcome of a cart operation. Every rejection here is an
// expected business rule, not an exceptional state; handlers pattern-match the
// kind to decide what to present.
type Kind int

const (
	Ok Kind = iota
	// StockInsufficient: add attempted with no remaining stock; cart unchanged.
	StockInsufficient
	// StockExceeded: the quantity would pass the product's stock; the
	// operation is rejected in full, never clamped.
	StockExceeded
	// CouponUnusable: percentage coupon selected below the minimum
	// discounted total; selection unchanged.
	CouponUnusable
)

// Result carries the outcome kind plus the state the caller needs: the lines
// after an accepted mutation, or the limit that caused a rejection.
type Result struct {
	Kind     Kind
	Lines    []Line
	MaxStock int
	Message  string
}
