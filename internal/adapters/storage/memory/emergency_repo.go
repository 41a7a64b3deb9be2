package memory

import (
	"context"
	"sync"

	"home-aidkit/internal/domain/emergency"
)

type emergencyRepo struct {
	mu          sync.RWMutex
	byHousehold map[string]emergency.Profile
}

func NewEmergencyRepo() emergency.Repository {
	return &emergencyRepo{
		byHousehold: make(map[string]emergency.Profile),
	}
}

func (r *emergencyRepo) Get(ctx context.Context, householdID string) (emergency.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byHousehold[householdID]
	if !ok {
		return emergency.Profile{}, emergency.ErrNotFound
	}
	return p, nil
}

func (r *emergencyRepo) Put(ctx context.Context, p emergency.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byHousehold[p.HouseholdID] = p
	return nil
}
