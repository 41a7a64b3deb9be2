package medicines

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
	byID map[string]Medicine
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medicine{}}
}

func (r *testRepo) Create(ctx context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, householdID, id string) (Medicine, error) {
	m, ok := r.byID[id]
	if !ok || m.HouseholdID != householdID {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByHousehold(ctx context.Context, householdID string) ([]Medicine, error) {
	out := make([]Medicine, 0)
	for _, m := range r.byID {
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, householdID, id string) error {
	m, ok := r.byID[id]
	if !ok || m.HouseholdID != householdID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RejectsShortName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "h1", Input{Name: " a "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_Defaults(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), "h1", Input{Name: "Ibuprofen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.QuantityUnit != UnitPcs {
		t.Fatalf("expected default unit pcs, got %q", m.QuantityUnit)
	}
	if m.RemindDaysBefore != 7 {
		t.Fatalf("expected default remind days 7, got %d", m.RemindDaysBefore)
	}
}

func TestService_Create_ClampsRemindDays(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	neg := -5
	m, err := svc.Create(ctx, "h1", Input{Name: "Ibuprofen", RemindDaysBefore: &neg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RemindDaysBefore != 0 {
		t.Fatalf("expected clamp to 0, got %d", m.RemindDaysBefore)
	}

	big := 1000
	m, err = svc.Create(ctx, "h1", Input{Name: "Ibuprofen", RemindDaysBefore: &big})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RemindDaysBefore != 365 {
		t.Fatalf("expected clamp to 365, got %d", m.RemindDaysBefore)
	}
}

func TestService_UseOne_DecrementsNumericValue(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	qty := 10.5
	m, err := svc.Create(ctx, "h1", Input{Name: "Syrup", QuantityValue: &qty, QuantityUnit: "ml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err = svc.UseOne(ctx, "h1", m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *m.QuantityValue != 9.5 {
		t.Fatalf("expected 9.5 left, got %v", *m.QuantityValue)
	}
	if m.Quantity != "9.5 ml" {
		t.Fatalf("expected display quantity refreshed, got %q", m.Quantity)
	}
}

func TestService_UseOne_ParsesFreeTextQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "h1", Input{Name: "Pills", Quantity: "~10 pastillas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err = svc.UseOne(ctx, "h1", m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.QuantityValue == nil || *m.QuantityValue != 9 {
		t.Fatalf("expected 9 left, got %v", m.QuantityValue)
	}
}

func TestService_UseOne_FloorsAtZero(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	qty := 0.5
	m, err := svc.Create(ctx, "h1", Input{Name: "Pills", QuantityValue: &qty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err = svc.UseOne(ctx, "h1", m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *m.QuantityValue != 0 {
		t.Fatalf("expected floor at 0, got %v", *m.QuantityValue)
	}
}

func TestService_UseOne_NoNumericQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "h1", Input{Name: "Ointment", Quantity: "half a tube"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UseOne(ctx, "h1", m.ID); !errors.Is(err, ErrNoQuantity) {
		t.Fatalf("expected ErrNoQuantity, got %v", err)
	}
}

func TestService_GetByID_WrongHousehold(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "h1", Input{Name: "Ibuprofen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetByID(ctx, "h2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across households, got %v", err)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"10", f(10)},
		{"~10 pastillas", f(10)},
		{"2,5 ml", f(2.5)},
		{"2.5", f(2.5)},
		{"none left", nil},
		{"", nil},
	}

	for _, c := range cases {
		got := ParseQuantity(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Fatalf("ParseQuantity(%q): expected nil, got %v", c.in, *got)
		case c.want != nil && (got == nil || *got != *c.want):
			t.Fatalf("ParseQuantity(%q): expected %v, got %v", c.in, *c.want, got)
		}
	}
}

func f(v float64) *float64 { return &v }
