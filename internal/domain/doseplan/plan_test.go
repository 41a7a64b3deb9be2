package doseplan

import (
	"testing"

	"home-aidkit/internal/domain/medicines"
)

func med(id, name, times string) medicines.Medicine {
	return medicines.Medicine{ID: id, Name: name, IntakeTimes: times}
}

func ids(doses []PlannedDose) []string {
	out := make([]string, 0, len(doses))
	for _, d := range doses {
		out = append(out, d.ID)
	}
	return out
}

func TestBuildTodayDosePlan_OrdersByTimeThenName(t *testing.T) {
	meds := []medicines.Medicine{
		med("m2", "Paracetamol", "20:00, 08:00"),
		med("m1", "Ibuprofen", "08:00"),
	}

	plan := BuildTodayDosePlan(meds, nil)

	want := []string{"m1|08:00", "m2|08:00", "m2|20:00"}
	got := ids(plan)
	if len(got) != len(want) {
		t.Fatalf("expected %d doses, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dose %d: expected %q, got %q (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestBuildTodayDosePlan_DropsMalformedAndDuplicateTimes(t *testing.T) {
	// "9:5" (minuto de un dígito) y "25:00" se descartan; "8:00" duplica "08:00"
	plan := BuildTodayDosePlan([]medicines.Medicine{
		med("m1", "Vitamin D", "9:5, 25:00, 08:00, 8:00, 23:30"),
	}, nil)

	if len(plan) != 2 {
		t.Fatalf("expected 2 doses, got %d: %v", len(plan), ids(plan))
	}
	if plan[0].ID != "m1|08:00" || plan[1].ID != "m1|23:30" {
		t.Fatalf("unexpected plan: %v", ids(plan))
	}
	if plan[0].Hour != 8 || plan[0].Minute != 0 {
		t.Fatalf("expected canonical 08:00, got %02d:%02d", plan[0].Hour, plan[0].Minute)
	}
}

func TestBuildTodayDosePlan_OneRowPerAssignee(t *testing.T) {
	m := med("m1", "Amoxicillin", "10:00")
	m.IntakeMemberUIDs = []string{"u1", "u2", " u1 "} // duplicado con espacios

	plan := BuildTodayDosePlan([]medicines.Medicine{m}, func(uid string) string {
		return map[string]string{"u1": "Anna", "u2": "Boris"}[uid]
	})

	if len(plan) != 2 {
		t.Fatalf("expected 2 doses, got %d: %v", len(plan), ids(plan))
	}
	if plan[0].ID != "m1|10:00|u1" || plan[1].ID != "m1|10:00|u2" {
		t.Fatalf("unexpected ids: %v", ids(plan))
	}
	if plan[1].TargetMemberNames[0] != "Boris" {
		t.Fatalf("expected resolved name Boris, got %v", plan[1].TargetMemberNames)
	}
}

func TestBuildTodayDosePlan_PerTimeOverrideWinsOverFallback(t *testing.T) {
	m := med("m1", "Insulin", "08:00, 20:00")
	m.IntakeMemberUIDs = []string{"u1"}
	m.IntakeMembersByTime = map[string][]string{
		"20:00": {"u2", "u3"},
	}

	plan := BuildTodayDosePlan([]medicines.Medicine{m}, nil)

	got := ids(plan)
	want := []string{"m1|08:00|u1", "m1|20:00|u2", "m1|20:00|u3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBuildTodayDosePlan_EmptyOverrideFallsBack(t *testing.T) {
	m := med("m1", "Insulin", "08:00")
	m.IntakeMemberUIDs = []string{"u1"}
	m.IntakeMembersByTime = map[string][]string{
		"08:00": {},
	}

	plan := BuildTodayDosePlan([]medicines.Medicine{m}, nil)

	if len(plan) != 1 || plan[0].ID != "m1|08:00|u1" {
		t.Fatalf("expected fallback to medicine-level assignee, got %v", ids(plan))
	}
}

func TestBuildTodayDosePlan_NonCanonicalOverrideKeyNeverMatches(t *testing.T) {
	m := med("m1", "Insulin", "09:30")
	m.IntakeMemberUIDs = []string{"u1"}
	m.IntakeMembersByTime = map[string][]string{
		"9:30": {"u2"}, // el punto canónico es "09:30", la clave no matchea
	}

	plan := BuildTodayDosePlan([]medicines.Medicine{m}, nil)

	if len(plan) != 1 || plan[0].ID != "m1|09:30|u1" {
		t.Fatalf("expected medicine-level assignee, got %v", ids(plan))
	}
}

func TestBuildTodayDosePlan_UnassignedDoseIsForEveryone(t *testing.T) {
	plan := BuildTodayDosePlan([]medicines.Medicine{med("m1", "Zinc", "12:00")}, nil)

	if len(plan) != 1 {
		t.Fatalf("expected 1 dose, got %d", len(plan))
	}
	d := plan[0]
	if d.ID != "m1|12:00" {
		t.Fatalf("expected id without member suffix, got %q", d.ID)
	}
	if d.TargetMemberUIDs == nil || len(d.TargetMemberUIDs) != 0 {
		t.Fatalf("expected empty (non-nil) uid list, got %#v", d.TargetMemberUIDs)
	}
}

func TestBuildTodayDosePlan_Deterministic(t *testing.T) {
	meds := []medicines.Medicine{
		med("m1", "Aspirin", "08:00, 12:00"),
		med("m2", "Aspirin", "08:00"),
	}

	first := ids(BuildTodayDosePlan(meds, nil))
	for i := 0; i < 10; i++ {
		again := ids(BuildTodayDosePlan(meds, nil))
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("plan order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
