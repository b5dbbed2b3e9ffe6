package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestList_ParsesDiscounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock", "description", "isRecommended", "discounts"}).
		AddRow("p1", "Premium Cotton T-Shirt", 10000, 20, "Soft everyday tee", false, `[{"quantity":10,"rate":0.1}]`).
		AddRow("p2", "Slim Fit Jeans", 20000, 20, "Stretch denim", true, `[]`)
	mock.ExpectQuery("SELECT id, name, price").WillReturnRows(rows)

	products, err := repo.List()
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if len(products[0].Discounts) != 1 || products[0].Discounts[0].Quantity != 10 {
		t.Fatalf("unexpected discounts %+v", products[0].Discounts)
	}
	if len(products[1].Discounts) != 0 {
		t.Fatalf("expected empty discounts, got %+v", products[1].Discounts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE id").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "description", "isRecommended", "discounts"}))

	if _, err := repo.GetByID("ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update("ghost", Product{Name: "X", Price: 1}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	mock.ExpectExec("DELETE FROM products").WithArgs("p2").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete("p2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
