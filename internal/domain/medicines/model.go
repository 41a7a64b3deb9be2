package medicines

import "time"

// QuantityUnit define las unidades soportadas para la cantidad restante.
// @Enum pcs, ml, g
type QuantityUnit string

const (
	UnitPcs QuantityUnit = "pcs"
	UnitMl  QuantityUnit = "ml"
	UnitG   QuantityUnit = "g"
)

// Medicine representa un medicamento del botiquín compartido del hogar.
//
// IntakeTimes es el string "HH:MM,HH:MM" tal como lo escribe el usuario;
// el plan diario lo parsea con filtrado silencioso, acá se guarda crudo.
// IntakeMembersByTime pisa la lista general IntakeMemberUIDs para un
// horario puntual.
type Medicine struct {
	ID          string
	HouseholdID string

	Name       string
	Dosage     string
	DosageForm string

	Quantity      string // texto mostrado, p.ej. "10 pcs"
	QuantityValue *float64
	QuantityUnit  QuantityUnit

	Notes   string
	Barcode string

	ExpiresAt        *time.Time
	RemindDaysBefore int // 0..365, default 7

	IntakeTimes         string
	IntakeMemberUIDs    []string
	IntakeMembersByTime map[string][]string

	CreatedAt time.Time
	UpdatedAt time.Time
}
