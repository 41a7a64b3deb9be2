package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"home-aidkit/internal/domain/intakes"
)

type intakesRepo struct {
	mu   sync.RWMutex
	logs []intakes.IntakeLog
}

func NewIntakesRepo() intakes.Repository {
	return &intakesRepo{}
}

func (r *intakesRepo) Add(ctx context.Context, l intakes.IntakeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("intake id required")
	}
	r.logs = append(r.logs, l)
	return nil
}

func (r *intakesRepo) ListByMedicine(ctx context.Context, householdID, medicineID string, limit int) ([]intakes.IntakeLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]intakes.IntakeLog, 0)
	for _, l := range r.logs {
		if l.HouseholdID == householdID && l.MedicineID == medicineID {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
