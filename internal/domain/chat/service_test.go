package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	msgs []HouseholdMessage
}

func (r *testRepo) Add(ctx context.Context, m HouseholdMessage) error {
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *testRepo) ListRecent(ctx context.Context, householdID string, limit int) ([]HouseholdMessage, error) {
	out := make([]HouseholdMessage, 0)
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

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Send_AuthorFallback(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Send(context.Background(), "h1", "u1", "  ", "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AuthorName != "Unknown" {
		t.Fatalf("expected Unknown fallback, got %q", m.AuthorName)
	}
}

func TestService_Send_RejectsEmptyAndTooLong(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Send(ctx, "h1", "u1", "Anna", "   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	// 1000 runas pasan, 1001 no; con cirílico se nota que el límite es
	// por runas y no por bytes
	ok := strings.Repeat("я", 1000)
	if _, err := svc.Send(ctx, "h1", "u1", "Anna", ok); err != nil {
		t.Fatalf("expected 1000 runes accepted, got %v", err)
	}
	if _, err := svc.Send(ctx, "h1", "u1", "Anna", ok+"я"); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
}

func TestService_List_ChronologicalOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Send(ctx, "h1", "u1", "Anna", text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := svc.List(ctx, "h1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[2].Text != "third" {
		t.Fatalf("expected chronological order, got %v", []string{msgs[0].Text, msgs[1].Text, msgs[2].Text})
	}
}

func TestService_List_LimitKeepsNewest(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Send(ctx, "h1", "u1", "Anna", text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := svc.List(ctx, "h1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// el límite recorta lo más viejo, y lo que queda sigue cronológico
	if msgs[0].Text != "second" || msgs[1].Text != "third" {
		t.Fatalf("expected [second third], got %v", []string{msgs[0].Text, msgs[1].Text})
	}
}
