package coupon

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("coupon not found")

// Repository provides access to the coupon catalog.
type Repository interface {
	List() ([]Coupon, error)
	GetByCode(code string) (Coupon, error)
	Create(c Coupon) (Coupon, error)
	Delete(code string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	coupons []Coupon
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	r := &InMemoryRepository{coupons: make([]Coupon, 0, len(seed))}
	r.coupons = append(r.coupons, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Coupon, len(r.coupons))
	copy(out, r.coupons)
	return out, nil
}

func (r *InMemoryRepository) GetByCode(code string) (Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := FindByCode(r.coupons, code); ok {
		return c, nil
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons = append(r.coupons, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.coupons {
		if c.Code == code {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
