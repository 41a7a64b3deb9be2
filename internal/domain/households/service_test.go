package households

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Household
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Household{}}
}

func (r *testRepo) Create(ctx context.Context, h Household) error {
	if _, ok := r.byID[h.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Household, error) {
	h, ok := r.byID[id]
	if !ok {
		return Household{}, ErrNotFound
	}
	return h, nil
}

func (r *testRepo) GetByJoinCode(ctx context.Context, code string) (Household, error) {
	for _, h := range r.byID {
		if h.JoinCode == code {
			return h, nil
		}
	}
	return Household{}, ErrNotFound
}

func (r *testRepo) ListIDs(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestGenerateJoinCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateJoinCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 chars, got %q", code)
		}
		for _, c := range code {
			if !strings.ContainsRune(joinCodeAlphabet, c) {
				t.Fatalf("unexpected character %q in code %q", c, code)
			}
		}
	}
}

func TestService_CreateForUser(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	svc.codeFn = func() string { return "ABC123" }

	h, err := svc.CreateForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.OwnerUID != "u1" || h.JoinCode != "ABC123" {
		t.Fatalf("unexpected household: %+v", h)
	}
	if h.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestService_FindByJoinCode_TrimAndUppercase(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.codeFn = func() string { return "ABC123" }

	created, err := svc.CreateForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h, err := svc.FindByJoinCode(context.Background(), "  abc123 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID != created.ID {
		t.Fatalf("expected same household, got %q", h.ID)
	}

	if _, err := svc.FindByJoinCode(context.Background(), "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.FindByJoinCode(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank code, got %v", err)
	}
}
