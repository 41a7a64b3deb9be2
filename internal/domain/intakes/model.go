package intakes

import "time"

// IntakeLog registra una toma puntual de un medicamento.
type IntakeLog struct {
	ID          string
	HouseholdID string
	MedicineID  string

	ActorUID  string
	ActorName string

	Amount float64
	Unit   string

	TakenAt   time.Time
	CreatedAt time.Time
}
