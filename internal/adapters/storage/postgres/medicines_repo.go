package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"home-aidkit/internal/domain/medicines"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

const medicineColumns = `
	id, household_id,
	name, dosage, dosage_form,
	quantity, quantity_value, quantity_unit,
	notes, barcode,
	expires_at, remind_days_before,
	intake_times, intake_member_uids, intake_members_by_time,
	created_at, updated_at`

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	uids, byTime, err := encodeIntakeMembers(m)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medicines (`+medicineColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		m.ID,
		m.HouseholdID,
		m.Name,
		m.Dosage,
		m.DosageForm,
		m.Quantity,
		toNullFloat(m.QuantityValue),
		string(m.QuantityUnit),
		m.Notes,
		m.Barcode,
		toNullTime(m.ExpiresAt),
		m.RemindDaysBefore,
		m.IntakeTimes,
		uids,
		byTime,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	uids, byTime, err := encodeIntakeMembers(m)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET
			name = $3,
			dosage = $4,
			dosage_form = $5,
			quantity = $6,
			quantity_value = $7,
			quantity_unit = $8,
			notes = $9,
			barcode = $10,
			expires_at = $11,
			remind_days_before = $12,
			intake_times = $13,
			intake_member_uids = $14,
			intake_members_by_time = $15,
			updated_at = $16
		WHERE id = $1 AND household_id = $2
	`,
		m.ID,
		m.HouseholdID,
		m.Name,
		m.Dosage,
		m.DosageForm,
		m.Quantity,
		toNullFloat(m.QuantityValue),
		string(m.QuantityUnit),
		m.Notes,
		m.Barcode,
		toNullTime(m.ExpiresAt),
		m.RemindDaysBefore,
		m.IntakeTimes,
		uids,
		byTime,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) GetByID(ctx context.Context, householdID, id string) (medicines.Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE id = $1 AND household_id = $2
	`, id, householdID)

	m, err := scanMedicine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return medicines.Medicine{}, medicines.ErrNotFound
		}
		return medicines.Medicine{}, err
	}
	return m, nil
}

func (r *MedicinesRepo) ListByHousehold(ctx context.Context, householdID string) ([]medicines.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE household_id = $1
		ORDER BY updated_at DESC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicinesRepo) Delete(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medicines
		WHERE id = $1 AND household_id = $2
	`, id, householdID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row rowScanner) (medicines.Medicine, error) {
	var (
		m      medicines.Medicine
		unit   string
		qty    sql.NullFloat64
		exp    sql.NullTime
		uids   []byte
		byTime []byte
	)
	if err := row.Scan(
		&m.ID,
		&m.HouseholdID,
		&m.Name,
		&m.Dosage,
		&m.DosageForm,
		&m.Quantity,
		&qty,
		&unit,
		&m.Notes,
		&m.Barcode,
		&exp,
		&m.RemindDaysBefore,
		&m.IntakeTimes,
		&uids,
		&byTime,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	m.QuantityUnit = medicines.QuantityUnit(unit)
	if qty.Valid {
		v := qty.Float64
		m.QuantityValue = &v
	}
	if exp.Valid {
		t := exp.Time
		m.ExpiresAt = &t
	}
	// jsonb malformado no debería pasar; si pasa, mejor campo vacío que caerse
	if len(uids) > 0 {
		_ = json.Unmarshal(uids, &m.IntakeMemberUIDs)
	}
	if len(byTime) > 0 {
		_ = json.Unmarshal(byTime, &m.IntakeMembersByTime)
	}

	return m, nil
}

func encodeIntakeMembers(m medicines.Medicine) ([]byte, []byte, error) {
	uids, err := json.Marshal(m.IntakeMemberUIDs)
	if err != nil {
		return nil, nil, err
	}
	byTime, err := json.Marshal(m.IntakeMembersByTime)
	if err != nil {
		return nil, nil, err
	}
	return uids, byTime, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
