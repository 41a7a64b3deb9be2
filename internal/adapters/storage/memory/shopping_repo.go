package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"home-aidkit/internal/domain/shopping"
)

type shoppingRepo struct {
	mu   sync.RWMutex
	byID map[string]shopping.ShoppingItem
}

func NewShoppingRepo() shopping.Repository {
	return &shoppingRepo{
		byID: make(map[string]shopping.ShoppingItem),
	}
}

func (r *shoppingRepo) Create(ctx context.Context, item shopping.ShoppingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.ID) == "" {
		return errors.New("item id required")
	}
	if _, exists := r.byID[item.ID]; exists {
		return errors.New("item already exists")
	}
	r.byID[item.ID] = item
	return nil
}

func (r *shoppingRepo) Update(ctx context.Context, item shopping.ShoppingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[item.ID]
	if !exists || current.HouseholdID != item.HouseholdID {
		return shopping.ErrNotFound
	}
	r.byID[item.ID] = item
	return nil
}

func (r *shoppingRepo) GetByID(ctx context.Context, householdID, id string) (shopping.ShoppingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok || item.HouseholdID != householdID {
		return shopping.ShoppingItem{}, shopping.ErrNotFound
	}
	return item, nil
}

func (r *shoppingRepo) ListByHousehold(ctx context.Context, householdID string) ([]shopping.ShoppingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shopping.ShoppingItem, 0)
	for _, item := range r.byID {
		if item.HouseholdID == householdID {
			out = append(out, item)
		}
	}

	// más recientes primero, como promete el servicio
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

func (r *shoppingRepo) Delete(ctx context.Context, householdID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok || item.HouseholdID != householdID {
		return shopping.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
