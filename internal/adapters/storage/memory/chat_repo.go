package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"home-aidkit/internal/domain/chat"
)

type chatRepo struct {
	mu   sync.RWMutex
	msgs []chat.HouseholdMessage
}

func NewChatRepo() chat.Repository {
	return &chatRepo{}
}

func (r *chatRepo) Add(ctx context.Context, m chat.HouseholdMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message id required")
	}
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *chatRepo) ListRecent(ctx context.Context, householdID string, limit int) ([]chat.HouseholdMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chat.HouseholdMessage, 0)
	for _, m := range r.msgs {
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
