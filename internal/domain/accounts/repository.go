package accounts

import "context"

type Repository interface {
	Create(ctx context.Context, p UserProfile) error
	Update(ctx context.Context, p UserProfile) error
	GetByUID(ctx context.Context, uid string) (UserProfile, error)
	GetByEmail(ctx context.Context, email string) (UserProfile, error)
	ListByHousehold(ctx context.Context, householdID string) ([]UserProfile, error)
}
