package shopping

import "context"

type Repository interface {
	Create(ctx context.Context, item ShoppingItem) error
	Update(ctx context.Context, item ShoppingItem) error
	GetByID(ctx context.Context, householdID, id string) (ShoppingItem, error)
	ListByHousehold(ctx context.Context, householdID string) ([]ShoppingItem, error)
	Delete(ctx context.Context, householdID, id string) error
}
