package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"home-aidkit/internal/domain/accounts"
)

type accountsRepo struct {
	mu      sync.RWMutex
	byUID   map[string]accounts.UserProfile
	byEmail map[string]string
}

func NewAccountsRepo() accounts.Repository {
	return &accountsRepo{
		byUID:   make(map[string]accounts.UserProfile),
		byEmail: make(map[string]string),
	}
}

func (r *accountsRepo) Create(ctx context.Context, p accounts.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UID) == "" {
		return errors.New("user uid required")
	}
	if _, exists := r.byUID[p.UID]; exists {
		return errors.New("user already exists")
	}
	if _, exists := r.byEmail[p.Email]; exists {
		return accounts.ErrEmailTaken
	}
	r.byUID[p.UID] = p
	r.byEmail[p.Email] = p.UID
	return nil
}

func (r *accountsRepo) Update(ctx context.Context, p accounts.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byUID[p.UID]
	if !exists {
		return accounts.ErrNotFound
	}
	if current.Email != p.Email {
		delete(r.byEmail, current.Email)
		r.byEmail[p.Email] = p.UID
	}
	r.byUID[p.UID] = p
	return nil
}

func (r *accountsRepo) GetByUID(ctx context.Context, uid string) (accounts.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUID[uid]
	if !ok {
		return accounts.UserProfile{}, accounts.ErrNotFound
	}
	return p, nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (accounts.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uid, ok := r.byEmail[email]
	if !ok {
		return accounts.UserProfile{}, accounts.ErrNotFound
	}
	return r.byUID[uid], nil
}

func (r *accountsRepo) ListByHousehold(ctx context.Context, householdID string) ([]accounts.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accounts.UserProfile, 0)
	for _, p := range r.byUID {
		if p.HouseholdID == householdID {
			out = append(out, p)
		}
	}
	return out, nil
}
