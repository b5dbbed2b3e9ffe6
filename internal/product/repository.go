package product

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

// Repository provides access to the product catalog.
type Repository interface {
	List() ([]Product, error)
	GetByID(id string) (Product, error)
	GetByIDs(ids []string) ([]Product, error)
	Create(p Product) (Product, error)
	Update(id string, p Product) (Product, error)
	Delete(id string) error
	Reset(products []Product) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := FindByID(r.products, id); ok {
		return p, nil
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByIDs(ids []string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := FindByID(r.products, id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == id {
			p.ID = id
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reset replaces the whole catalog (used for dev / seeding).
func (r *InMemoryRepository) Reset(products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make([]Product, len(products))
	copy(r.products, products)
	return nil
}
