package doseplan

import (
	"context"

	"home-aidkit/internal/domain/medicines"
)

// UseGuard bloquea el "tomar una" cuando las tomas pendientes de hoy de un
// medicamento están asignadas a otros miembros del hogar.
type UseGuard struct {
	tracker *Tracker
}

func NewUseGuard(tracker *Tracker) *UseGuard {
	return &UseGuard{tracker: tracker}
}

// CanUseNow implementa medicines.DoseGuard. Mira las tomas de hoy que
// siguen pendientes para quien consulta: si alguna tiene asignados y
// ninguna lo incluye, el consumo se rechaza.
func (g *UseGuard) CanUseNow(ctx context.Context, m medicines.Medicine, userUID string) (bool, error) {
	plan := BuildTodayDosePlan([]medicines.Medicine{m}, nil)
	if len(plan) == 0 {
		return true, nil
	}

	done, err := g.tracker.LoadTodayDoneIDs(ctx, userUID)
	if err != nil {
		return false, err
	}

	restricted := false
	for _, d := range plan {
		if _, isDone := done[d.ID]; isDone || len(d.TargetMemberUIDs) == 0 {
			continue
		}
		restricted = true
		for _, uid := range d.TargetMemberUIDs {
			if uid == userUID {
				return true, nil
			}
		}
	}
	return !restricted, nil
}
