package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"home-aidkit/internal/domain/medicines"
)

type medicinesRepo struct {
	mu   sync.RWMutex
	byID map[string]medicines.Medicine
}

func NewMedicinesRepo() medicines.Repository {
	return &medicinesRepo{
		byID: make(map[string]medicines.Medicine),
	}
}

func (r *medicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medicine already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[m.ID]
	if !exists || current.HouseholdID != m.HouseholdID {
		return medicines.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicinesRepo) GetByID(ctx context.Context, householdID, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok || m.HouseholdID != householdID {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return m, nil
}

func (r *medicinesRepo) ListByHousehold(ctx context.Context, householdID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.byID {
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}

	// últimos editados primero, como promete el servicio
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

func (r *medicinesRepo) Delete(ctx context.Context, householdID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.HouseholdID != householdID {
		return medicines.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
