package doseplan

import (
	"context"
	"testing"
	"time"
)

func TestUseGuard_BlocksWhenAssignedToAnotherMember(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	guard := NewUseGuard(tr)

	m := med("m1", "Ibuprofen", "08:00")
	m.IntakeMemberUIDs = []string{"u2"}

	ok, err := guard.CanUseNow(context.Background(), m, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected use blocked for non-assignee")
	}
}

func TestUseGuard_AllowsAssignee(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	guard := NewUseGuard(tr)

	m := med("m1", "Ibuprofen", "08:00")
	m.IntakeMemberUIDs = []string{"u1", "u2"}

	ok, err := guard.CanUseNow(context.Background(), m, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected assignee allowed")
	}
}

func TestUseGuard_AllowsUnassignedMedicine(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	guard := NewUseGuard(tr)

	ok, err := guard.CanUseNow(context.Background(), med("m1", "Ibuprofen", "08:00"), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected unassigned medicine usable by anyone")
	}
}

func TestUseGuard_AllowsOnceRestrictedDosesAreDone(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	guard := NewUseGuard(tr)
	ctx := context.Background()

	m := med("m1", "Ibuprofen", "08:00")
	m.IntakeMemberUIDs = []string{"u2"}

	// la toma asignada a u2 ya figura como hecha para quien consulta
	if _, err := tr.ToggleDoseDone(ctx, "u1", "m1|08:00|u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := guard.CanUseNow(ctx, m, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected use allowed once restricted doses are done")
	}
}

func TestUseGuard_NoSchedule(t *testing.T) {
	tr := newTestTracker(newTestKV(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	guard := NewUseGuard(tr)

	ok, err := guard.CanUseNow(context.Background(), med("m1", "Ibuprofen", ""), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected medicine without schedule usable")
	}
}
