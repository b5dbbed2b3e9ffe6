package product

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const listQuery = `
        SELECT id, name, price, stock, description, "isRecommended", discounts
        FROM products
        ORDER BY id
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(`SELECT id, name, price, stock, description, "isRecommended", discounts FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

// GetByIDs loads the given products in one round trip. Missing ids are
// silently absent from the result.
func (r *PostgresRepository) GetByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT id, name, price, stock, description, "isRecommended", discounts FROM products WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	discounts, err := json.Marshal(p.Discounts)
	if err != nil {
		return Product{}, err
	}
	_, err = r.db.Exec(`INSERT INTO products (id, name, price, stock, description, "isRecommended", discounts)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Price, p.Stock, p.Description, p.IsRecommended, discounts)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	discounts, err := json.Marshal(p.Discounts)
	if err != nil {
		return Product{}, err
	}
	res, err := r.db.Exec(`UPDATE products SET name = $1, price = $2, stock = $3, description = $4, "isRecommended" = $5, discounts = $6 WHERE id = $7`,
		p.Name, p.Price, p.Stock, p.Description, p.IsRecommended, discounts, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset clears the table and inserts the given products in one transaction.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		tx.Rollback()
		return err
	}
	for _, p := range products {
		discounts, err := json.Marshal(p.Discounts)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO products (id, name, price, stock, description, "isRecommended", discounts)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, p.Name, p.Price, p.Stock, p.Description, p.IsRecommended, discounts); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var discounts []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.IsRecommended, &discounts); err != nil {
		return Product{}, err
	}
	if len(discounts) > 0 {
		if err := json.Unmarshal(discounts, &p.Discounts); err != nil {
			return Product{}, err
		}
	}
	if p.Discounts == nil {
		p.Discounts = []Discount{}
	}
	return p, nil
}
