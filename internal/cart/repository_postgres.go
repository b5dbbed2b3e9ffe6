package cart

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

func (r *PostgresRepository) Get(userID int) (State, error) {
	var raw sql.NullString
	var code sql.NullString
	err := r.db.QueryRow(`SELECT cart, "couponCode" FROM carts WHERE "userID" = $1`, userID).Scan(&raw, &code)
	if err == sql.ErrNoRows {
		return State{Items: []Item{}}, nil
	}
	if err != nil {
		return State{}, err
	}

	st := State{Items: []Item{}}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &st.Items); err != nil {
			// legacy map form: productId -> quantity, order lost
			var m map[string]int
			if err2 := json.Unmarshal([]byte(raw.String), &m); err2 != nil {
				return State{}, err
			}
			st.Items = make([]Item, 0, len(m))
			for pid, qty := range m {
				st.Items = append(st.Items, Item{ProductID: pid, Quantity: qty})
			}
		}
	}
	if code.Valid {
		st.CouponCode = code.String
	}
	return st, nil
}

func (r *PostgresRepository) Save(userID int, st State, updatedAt string) error {
	items := st.Items
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var code any
	if st.CouponCode != "" {
		code = st.CouponCode
	}
	_, err = r.db.Exec(`INSERT INTO carts ("userID", cart, "couponCode", "updatedAt")
        VALUES ($1,$2,$3,$4)
        ON CONFLICT ("userID") DO UPDATE SET cart = $2, "couponCode" = $3, "updatedAt" = $4`,
		userID, raw, code, updatedAt)
	return err
}

func (r *PostgresRepository) ClearSelectionsByCode(code string) error {
	_, err := r.db.Exec(`UPDATE carts SET "couponCode" = NULL WHERE "couponCode" = $1`, code)
	return err
}
