package cart

import (
	"sync"
)

// Item is the persisted form of a line: product id and quantity only.
// Products are re-read from the catalog on load so edits show up immediately.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// State is the whole session cart: ordered items plus the selected coupon
// code, replaced wholesale after every accepted operation.
type State struct {
	Items      []Item `json:"items"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Repository persists cart state per user. A missing cart reads back as an
// empty state, not an error.
type Repository interface {
	Get(userID int) (State, error)
	Save(userID int, st State, updatedAt string) error
	ClearSelectionsByCode(code string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	states map[int]State
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{states: make(map[int]State)}
}

func (r *InMemoryRepository) Get(userID int) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.states[userID]
	if !ok {
		return State{Items: []Item{}}, nil
	}
	items := make([]Item, len(st.Items))
	copy(items, st.Items)
	return State{Items: items, CouponCode: st.CouponCode}, nil
}

func (r *InMemoryRepository) Save(userID int, st State, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]Item, len(st.Items))
	copy(items, st.Items)
	r.states[userID] = State{Items: items, CouponCode: st.CouponCode}
	return nil
}

func (r *InMemoryRepository) ClearSelectionsByCode(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, st := range r.states {
		if st.CouponCode == code {
			st.CouponCode = ""
			r.states[id] = st
		}
	}
	return nil
}
