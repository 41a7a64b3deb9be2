package households

import "context"

type Repository interface {
	Create(ctx context.Context, h Household) error
	GetByID(ctx context.Context, id string) (Household, error)
	GetByJoinCode(ctx context.Context, code string) (Household, error)

	// ListIDs alimenta el job de recordatorios; no pagina porque el
	// universo de hogares de una instancia es chico.
	ListIDs(ctx context.Context) ([]string, error)
}
