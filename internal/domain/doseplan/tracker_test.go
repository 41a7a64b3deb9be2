package doseplan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"home-aidkit/internal/ports/kv"
)

// -------------------------
// KV de prueba (in-memory)
// -------------------------

type testKV struct {
	data map[string][]byte
}

func newTestKV() *testKV {
	return &testKV{data: map[string][]byte{}}
}

func (s *testKV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return raw, nil
}

func (s *testKV) Set(ctx context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func newTestTracker(store kv.Store, day time.Time) *Tracker {
	tr := NewTracker(store)
	tr.now = func() time.Time { return day }
	return tr
}

// -------------------------
// Tests
// -------------------------

func TestTracker_FirstLoad_EmptySet(t *testing.T) {
	store := newTestKV()
	tr := newTestTracker(store, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	done, err := tr.LoadTodayDoneIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected empty set, got %v", done)
	}

	// la lectura ya dejó persistido el registro del día
	raw, ok := store.data["dose_tracker/v1/u1"]
	if !ok {
		t.Fatalf("expected fresh record persisted")
	}
	var state struct {
		Date        string   `json:"date"`
		DoneDoseIDs []string `json:"doneDoseIds"`
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("bad blob: %v", err)
	}
	if state.Date != "2026-03-10" || len(state.DoneDoseIDs) != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestTracker_ToggleTwice_RoundTrips(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	done, err := tr.ToggleDoseDone(ctx, "u1", "m1|08:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := done["m1|08:00"]; !ok {
		t.Fatalf("expected dose marked, got %v", done)
	}

	done, err = tr.ToggleDoseDone(ctx, "u1", "m1|08:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected dose unmarked, got %v", done)
	}
}

func TestTracker_RollsOverOnNewDay(t *testing.T) {
	store := newTestKV()
	day1 := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	tr := newTestTracker(store, day1)
	ctx := context.Background()

	if _, err := tr.ToggleDoseDone(ctx, "u1", "m1|23:30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// pasa la medianoche
	tr.now = func() time.Time { return day1.Add(20 * time.Minute) }

	done, err := tr.LoadTodayDoneIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected reset after midnight, got %v", done)
	}
}

func TestTracker_CorruptBlobTreatedAsAbsent(t *testing.T) {
	store := newTestKV()
	store.data["dose_tracker/v1/u1"] = []byte("{not json")

	tr := newTestTracker(store, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	done, err := tr.LoadTodayDoneIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected empty set over corrupt blob, got %v", done)
	}
}

func TestTracker_PerUserIsolation(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := tr.ToggleDoseDone(ctx, "u1", "m1|08:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done, err := tr.LoadTodayDoneIDs(ctx, "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected u2 untouched, got %v", done)
	}
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("kv down")
}

func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("kv down")
}

func TestTracker_WriteErrorPropagates(t *testing.T) {
	tr := newTestTracker(failingKV{}, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	if _, err := tr.ToggleDoseDone(context.Background(), "u1", "m1|08:00"); err == nil {
		t.Fatalf("expected error when store is down")
	}
}
