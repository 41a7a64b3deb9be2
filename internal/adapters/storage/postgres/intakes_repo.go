package postgres

import (
	"context"
	"database/sql"

	"home-aidkit/internal/domain/intakes"
)

type IntakesRepo struct {
	db *sql.DB
}

func NewIntakesRepo(db *sql.DB) *IntakesRepo {
	return &IntakesRepo{db: db}
}

func (r *IntakesRepo) Add(ctx context.Context, l intakes.IntakeLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO intake_logs (
			id, household_id, medicine_id, actor_uid, actor_name,
			amount, unit, taken_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		l.ID,
		l.HouseholdID,
		l.MedicineID,
		l.ActorUID,
		l.ActorName,
		l.Amount,
		l.Unit,
		l.TakenAt,
		l.CreatedAt,
	)
	return err
}

func (r *IntakesRepo) ListByMedicine(ctx context.Context, householdID, medicineID string, limit int) ([]intakes.IntakeLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, household_id, medicine_id, actor_uid, actor_name,
			amount, unit, taken_at, created_at
		FROM intake_logs
		WHERE household_id = $1 AND medicine_id = $2
		ORDER BY taken_at DESC
		LIMIT $3
	`, householdID, medicineID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]intakes.IntakeLog, 0)
	for rows.Next() {
		var l intakes.IntakeLog
		if err := rows.Scan(
			&l.ID,
			&l.HouseholdID,
			&l.MedicineID,
			&l.ActorUID,
			&l.ActorName,
			&l.Amount,
			&l.Unit,
			&l.TakenAt,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
