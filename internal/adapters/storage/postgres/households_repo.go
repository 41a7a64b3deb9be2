package postgres

import (
	"context"
	"database/sql"

	"home-aidkit/internal/domain/households"
)

type HouseholdsRepo struct {
	db *sql.DB
}

func NewHouseholdsRepo(db *sql.DB) *HouseholdsRepo {
	return &HouseholdsRepo{db: db}
}

func (r *HouseholdsRepo) Create(ctx context.Context, h households.Household) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO households (id, owner_uid, join_code, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		h.ID,
		h.OwnerUID,
		h.JoinCode,
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *HouseholdsRepo) GetByID(ctx context.Context, id string) (households.Household, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_uid, join_code, created_at, updated_at
		FROM households
		WHERE id = $1
	`, id)
	return scanHousehold(row)
}

func (r *HouseholdsRepo) GetByJoinCode(ctx context.Context, code string) (households.Household, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_uid, join_code, created_at, updated_at
		FROM households
		WHERE join_code = $1
	`, code)
	return scanHousehold(row)
}

func (r *HouseholdsRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM households ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanHousehold(row rowScanner) (households.Household, error) {
	var h households.Household
	if err := row.Scan(
		&h.ID,
		&h.OwnerUID,
		&h.JoinCode,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return households.Household{}, households.ErrNotFound
		}
		return households.Household{}, err
	}
	return h, nil
}
