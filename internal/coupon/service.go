package coupon

import (
	"errors"
	"strings"
)

var ErrDuplicateCode = errors.New("coupon code already exists")

// SelectionClearer drops any active cart selections that reference a coupon
// code. Wired to the cart repository so deleting a coupon also deselects it.
type SelectionClearer interface {
	ClearSelectionsByCode(code string) error
}

type Service struct {
	repo       Repository
	selections SelectionClearer
}

func NewService(repo Repository, selections SelectionClearer) *Service {
	return &Service{repo: repo, selections: selections}
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) GetByCode(code string) (Coupon, error) {
	return s.repo.GetByCode(strings.ToUpper(code))
}

// Create normalizes the code to uppercase and rejects duplicates.
func (s *Service) Create(c Coupon) (Coupon, error) {
	c.Code = strings.ToUpper(c.Code)
	existing, err := s.repo.List()
	if err != nil {
		return Coupon{}, err
	}
	if IsDuplicateCode(existing, c.Code) {
		return Coupon{}, ErrDuplicateCode
	}
	return s.repo.Create(c)
}

// Delete removes the coupon and clears it from any cart that selected it.
func (s *Service) Delete(code string) error {
	code = strings.ToUpper(code)
	if err := s.repo.Delete(code); err != nil {
		return err
	}
	if s.selections != nil {
		return s.selections.ClearSelectionsByCode(code)
	}
	return nil
}
