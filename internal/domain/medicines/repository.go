package medicines

import "context"

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	Update(ctx context.Context, m Medicine) error
	GetByID(ctx context.Context, householdID, id string) (Medicine, error)
	ListByHousehold(ctx context.Context, householdID string) ([]Medicine, error)
	Delete(ctx context.Context, householdID, id string) error
}
