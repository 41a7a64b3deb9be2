package chat

import "context"

type Repository interface {
	Add(ctx context.Context, m HouseholdMessage) error
	// ListRecent devuelve los últimos limit mensajes, más nuevos primero.
	ListRecent(ctx context.Context, householdID string, limit int) ([]HouseholdMessage, error)
}
