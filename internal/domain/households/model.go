package households

import "time"

// Household es el grupo que comparte botiquín, compras y chat.
// JoinCode es el código corto que el dueño pasa al resto de la familia.
type Household struct {
	ID       string
	OwnerUID string
	JoinCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}
