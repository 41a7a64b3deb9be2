package emergency

import "context"

type Repository interface {
	Get(ctx context.Context, householdID string) (Profile, error)
	Put(ctx context.Context, p Profile) error
}
