package postgres

import (
	"context"
	"database/sql"
	"strings"

	"home-aidkit/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

const profileColumns = `
	uid, email, display_name, household_id, push_token, password_hash,
	created_at, updated_at`

func (r *AccountsRepo) Create(ctx context.Context, p accounts.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (`+profileColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.UID,
		p.Email,
		p.DisplayName,
		p.HouseholdID,
		p.PushToken,
		p.PasswordHash,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *AccountsRepo) Update(ctx context.Context, p accounts.UserProfile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET
			email = $2,
			display_name = $3,
			household_id = $4,
			push_token = $5,
			password_hash = $6,
			updated_at = $7
		WHERE uid = $1
	`,
		p.UID,
		p.Email,
		p.DisplayName,
		p.HouseholdID,
		p.PushToken,
		p.PasswordHash,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *AccountsRepo) GetByUID(ctx context.Context, uid string) (accounts.UserProfile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return accounts.UserProfile{}, accounts.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE uid = $1
	`, uid)
	return scanProfile(row)
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE email = $1
	`, email)
	return scanProfile(row)
}

func (r *AccountsRepo) ListByHousehold(ctx context.Context, householdID string) ([]accounts.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE household_id = $1
		ORDER BY created_at ASC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accounts.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(row rowScanner) (accounts.UserProfile, error) {
	var p accounts.UserProfile
	if err := row.Scan(
		&p.UID,
		&p.Email,
		&p.DisplayName,
		&p.HouseholdID,
		&p.PushToken,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accounts.UserProfile{}, accounts.ErrNotFound
		}
		return accounts.UserProfile{}, err
	}
	return p, nil
}
