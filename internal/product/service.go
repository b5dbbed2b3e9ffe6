package product

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog, optionally filtered by a search term.
func (s *Service) List(searchTerm string) ([]Product, error) {
	products, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return FilterBySearchTerm(products, searchTerm), nil
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	p.Discounts = FilterValidDiscounts(p.Discounts)
	return s.repo.Create(p)
}

func (s *Service) Update(id string, p Product) (Product, error) {
	p.Discounts = FilterValidDiscounts(p.Discounts)
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	return s.repo.Reset(products)
}
