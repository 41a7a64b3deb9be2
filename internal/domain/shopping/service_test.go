package shopping

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]ShoppingItem
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]ShoppingItem{}}
}

func (r *testRepo) Create(ctx context.Context, item ShoppingItem) error {
	if _, ok := r.byID[item.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[item.ID] = item
	return nil
}

func (r *testRepo) Update(ctx context.Context, item ShoppingItem) error {
	if _, ok := r.byID[item.ID]; !ok {
		return ErrNotFound
	}
	r.byID[item.ID] = item
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, householdID, id string) (ShoppingItem, error) {
	item, ok := r.byID[id]
	if !ok || item.HouseholdID != householdID {
		return ShoppingItem{}, ErrNotFound
	}
	return item, nil
}

func (r *testRepo) ListByHousehold(ctx context.Context, householdID string) ([]ShoppingItem, error) {
	out := make([]ShoppingItem, 0)
	for _, item := range r.byID {
		if item.HouseholdID == householdID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, householdID, id string) error {
	item, ok := r.byID[id]
	if !ok || item.HouseholdID != householdID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesPriority(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "h1", "u1", CreateInput{Title: "Bandages", Priority: "urgent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Priority != PriorityNormal {
		t.Fatalf("unknown priority must fall back to normal, got %q", item.Priority)
	}

	item, err = svc.Create(ctx, "h1", "u1", CreateInput{Title: "Thermometer", Priority: "high"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Priority != PriorityHigh {
		t.Fatalf("expected high, got %q", item.Priority)
	}
}

func TestService_Create_RequiresTitle(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Create(context.Background(), "h1", "u1", CreateInput{Title: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Toggle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "h1", "u1", CreateInput{Title: "Bandages"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err = svc.Toggle(ctx, "h1", item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Done {
		t.Fatalf("expected done after first toggle")
	}

	item, err = svc.Toggle(ctx, "h1", item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Done {
		t.Fatalf("expected not done after second toggle")
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "h1", "u1", CreateInput{Title: "Bandages", Quantity: "2 boxes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	high := "high"
	item, err = svc.Update(ctx, "h1", item.ID, UpdateInput{Priority: &high})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Priority != PriorityHigh {
		t.Fatalf("expected high, got %q", item.Priority)
	}
	if item.Title != "Bandages" || item.Quantity != "2 boxes" {
		t.Fatalf("untouched fields must survive the patch: %+v", item)
	}

	empty := " "
	if _, err := svc.Update(ctx, "h1", item.ID, UpdateInput{Title: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestService_Update_WrongHousehold(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "h1", "u1", CreateInput{Title: "Bandages"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := true
	if _, err := svc.Update(ctx, "h2", item.ID, UpdateInput{Done: &done}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across households, got %v", err)
	}
}
