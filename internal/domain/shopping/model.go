package shopping

import "time"

// Priority de un ítem de compras.
// @Enum normal, high
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ShoppingItem es una entrada de la lista de compras compartida.
type ShoppingItem struct {
	ID          string
	HouseholdID string

	Title    string
	Quantity string
	Done     bool
	Priority Priority

	CreatedByUID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
