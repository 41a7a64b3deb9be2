package postgres

import (
	"context"
	"database/sql"

	"home-aidkit/internal/domain/shopping"
)

type ShoppingRepo struct {
	db *sql.DB
}

func NewShoppingRepo(db *sql.DB) *ShoppingRepo {
	return &ShoppingRepo{db: db}
}

const shoppingColumns = `
	id, household_id, title, quantity, done, priority, created_by_uid,
	created_at, updated_at`

func (r *ShoppingRepo) Create(ctx context.Context, item shopping.ShoppingItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shopping_items (`+shoppingColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		item.ID,
		item.HouseholdID,
		item.Title,
		item.Quantity,
		item.Done,
		string(item.Priority),
		item.CreatedByUID,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func (r *ShoppingRepo) Update(ctx context.Context, item shopping.ShoppingItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shopping_items
		SET
			title = $3,
			quantity = $4,
			done = $5,
			priority = $6,
			updated_at = $7
		WHERE id = $1 AND household_id = $2
	`,
		item.ID,
		item.HouseholdID,
		item.Title,
		item.Quantity,
		item.Done,
		string(item.Priority),
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shopping.ErrNotFound
	}
	return nil
}

func (r *ShoppingRepo) GetByID(ctx context.Context, householdID, id string) (shopping.ShoppingItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+shoppingColumns+`
		FROM shopping_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID)
	return scanShoppingItem(row)
}

func (r *ShoppingRepo) ListByHousehold(ctx context.Context, householdID string) ([]shopping.ShoppingItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shoppingColumns+`
		FROM shopping_items
		WHERE household_id = $1
		ORDER BY updated_at DESC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shopping.ShoppingItem, 0)
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *ShoppingRepo) Delete(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM shopping_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shopping.ErrNotFound
	}
	return nil
}

func scanShoppingItem(row rowScanner) (shopping.ShoppingItem, error) {
	var (
		item     shopping.ShoppingItem
		priority string
	)
	if err := row.Scan(
		&item.ID,
		&item.HouseholdID,
		&item.Title,
		&item.Quantity,
		&item.Done,
		&priority,
		&item.CreatedByUID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return shopping.ShoppingItem{}, shopping.ErrNotFound
		}
		return shopping.ShoppingItem{}, err
	}
	item.Priority = shopping.Priority(priority)
	return item, nil
}
