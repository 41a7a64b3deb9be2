package postgres

import (
	"context"
	"database/sql"

	"home-aidkit/internal/domain/chat"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Add(ctx context.Context, m chat.HouseholdMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO household_messages (id, household_id, author_uid, author_name, text, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		m.ID,
		m.HouseholdID,
		m.AuthorUID,
		m.AuthorName,
		m.Text,
		m.CreatedAt,
	)
	return err
}

func (r *ChatRepo) ListRecent(ctx context.Context, householdID string, limit int) ([]chat.HouseholdMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, household_id, author_uid, author_name, text, created_at
		FROM household_messages
		WHERE household_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, householdID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.HouseholdMessage, 0)
	for rows.Next() {
		var m chat.HouseholdMessage
		if err := rows.Scan(
			&m.ID,
			&m.HouseholdID,
			&m.AuthorUID,
			&m.AuthorName,
			&m.Text,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
