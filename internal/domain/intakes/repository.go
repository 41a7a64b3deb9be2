package intakes

import "context"

type Repository interface {
	Add(ctx context.Context, l IntakeLog) error
	// ListByMedicine devuelve tomas ordenadas por TakenAt desc, hasta limit.
	ListByMedicine(ctx context.Context, householdID, medicineID string, limit int) ([]IntakeLog, error)
}
