package postgres

import (
	"context"
	"database/sql"

	"home-aidkit/internal/domain/emergency"
)

type EmergencyRepo struct {
	db *sql.DB
}

func NewEmergencyRepo(db *sql.DB) *EmergencyRepo {
	return &EmergencyRepo{db: db}
}

func (r *EmergencyRepo) Get(ctx context.Context, householdID string) (emergency.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			household_id, contact_name, contact_phone,
			blood_type, allergies, chronic_conditions, address, notes,
			updated_at
		FROM emergency_profiles
		WHERE household_id = $1
	`, householdID)

	var p emergency.Profile
	if err := row.Scan(
		&p.HouseholdID,
		&p.ContactName,
		&p.ContactPhone,
		&p.BloodType,
		&p.Allergies,
		&p.ChronicConditions,
		&p.Address,
		&p.Notes,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return emergency.Profile{}, emergency.ErrNotFound
		}
		return emergency.Profile{}, err
	}
	return p, nil
}

func (r *EmergencyRepo) Put(ctx context.Context, p emergency.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO emergency_profiles (
			household_id, contact_name, contact_phone,
			blood_type, allergies, chronic_conditions, address, notes,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (household_id) DO UPDATE SET
			contact_name = EXCLUDED.contact_name,
			contact_phone = EXCLUDED.contact_phone,
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			chronic_conditions = EXCLUDED.chronic_conditions,
			address = EXCLUDED.address,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`,
		p.HouseholdID,
		p.ContactName,
		p.ContactPhone,
		p.BloodType,
		p.Allergies,
		p.ChronicConditions,
		p.Address,
		p.Notes,
		p.UpdatedAt,
	)
	return err
}
