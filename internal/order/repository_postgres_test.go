package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresCreate_ReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"orderID"}).AddRow(12))

	created, err := repo.Create(Order{
		OrderNumber:         "ORD-1700000000000",
		UserID:              1,
		Cart:                map[string]int{"p1": 2},
		TotalBeforeDiscount: 20000,
		TotalAfterDiscount:  18000,
		CouponCode:          "PERCENT10",
		CreatedAt:           "2026-08-28T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if created.OrderID != 12 {
		t.Fatalf("expected generated id 12, got %d", created.OrderID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByUser_ParsesCartAndNullCoupon(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	cols := []string{"orderID", "orderNumber", "userID", "cart", "totalBeforeDiscount", "totalAfterDiscount", "couponCode", "createdAt"}
	rows := sqlmock.NewRows(cols).
		AddRow(1, "ORD-1700000000000", 5, `{"p1":2}`, 20000, 18000, "PERCENT10", "2026-08-28T00:00:00Z").
		AddRow(2, "ORD-1700000001000", 5, `{"p2":1}`, 20000, 20000, nil, "2026-08-28T00:01:00Z")
	mock.ExpectQuery("FROM orders WHERE").WithArgs(5).WillReturnRows(rows)

	orders, err := repo.ListByUser(5)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Cart["p1"] != 2 || orders[0].CouponCode != "PERCENT10" {
		t.Fatalf("unexpected first order %+v", orders[0])
	}
	if orders[1].CouponCode != "" {
		t.Fatalf("expected empty coupon code, got %q", orders[1].CouponCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
