package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	cartJSON, err := json.Marshal(ord.Cart)
	if err != nil {
		return Order{}, err
	}
	var code any
	if ord.CouponCode != "" {
		code = ord.CouponCode
	}

	err = r.db.QueryRow(`INSERT INTO orders ("orderNumber", "userID", cart, "totalBeforeDiscount", "totalAfterDiscount", "couponCode", "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING "orderID"`,
		ord.OrderNumber, ord.UserID, cartJSON, ord.TotalBeforeDiscount, ord.TotalAfterDiscount, code, ord.CreatedAt).
		Scan(&ord.OrderID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT "orderID", "orderNumber", "userID", cart, "totalBeforeDiscount", "totalAfterDiscount", "couponCode", "createdAt"
        FROM orders WHERE "userID" = $1 ORDER BY "orderID"`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var cartJSON []byte
		var code sql.NullString
		if err := rows.Scan(&ord.OrderID, &ord.OrderNumber, &ord.UserID, &cartJSON, &ord.TotalBeforeDiscount, &ord.TotalAfterDiscount, &code, &ord.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cartJSON, &ord.Cart); err != nil {
			return nil, err
		}
		if code.Valid {
			ord.CouponCode = code.String
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
