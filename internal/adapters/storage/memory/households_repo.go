package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"home-aidkit/internal/domain/households"
)

type householdsRepo struct {
	mu     sync.RWMutex
	byID   map[string]households.Household
	byCode map[string]string
}

func NewHouseholdsRepo() households.Repository {
	return &householdsRepo{
		byID:   make(map[string]households.Household),
		byCode: make(map[string]string),
	}
}

func (r *householdsRepo) Create(ctx context.Context, h households.Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("household id required")
	}
	if _, exists := r.byID[h.ID]; exists {
		return errors.New("household already exists")
	}
	r.byID[h.ID] = h
	r.byCode[h.JoinCode] = h.ID
	return nil
}

func (r *householdsRepo) GetByID(ctx context.Context, id string) (households.Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return households.Household{}, households.ErrNotFound
	}
	return h, nil
}

func (r *householdsRepo) GetByJoinCode(ctx context.Context, code string) (households.Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return households.Household{}, households.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *householdsRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
