package coupon

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT code, name, "discountType", "discountValue" FROM coupons ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(&c.Code, &c.Name, &c.DiscountType, &c.DiscountValue); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	var c Coupon
	err := r.db.QueryRow(`SELECT code, name, "discountType", "discountValue" FROM coupons WHERE code = $1`, code).
		Scan(&c.Code, &c.Name, &c.DiscountType, &c.DiscountValue)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(c Coupon) (Coupon, error) {
	_, err := r.db.Exec(`INSERT INTO coupons (code, name, "discountType", "discountValue") VALUES ($1,$2,$3,$4)`,
		c.Code, c.Name, c.DiscountType, c.DiscountValue)
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(code string) error {
	res, err := r.db.Exec(`DELETE FROM coupons WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
