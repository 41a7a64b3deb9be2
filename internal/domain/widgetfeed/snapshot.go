// Package widgetfeed arma el resumen compacto que consume el widget de
// pantalla de inicio: pocas líneas, sin detalle, pensado para refrescos
// frecuentes.
package widgetfeed

import (
	"math"
	"sort"
	"time"

	"home-aidkit/internal/domain/doseplan"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/domain/shopping"
)

const (
	maxMedicines     = 5
	maxShoppingItems = 5
)

type MedicineBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	// DaysLeft es nil cuando el medicamento no tiene vencimiento cargado.
	DaysLeft *int `json:"days_left,omitempty"`
}

type Snapshot struct {
	Date string `json:"date"`

	PendingDoses int    `json:"pending_doses"`
	TotalDoses   int    `json:"total_doses"`
	NextDoseTime string `json:"next_dose_time,omitempty"`

	Medicines []MedicineBrief `json:"medicines"`

	OpenShoppingCount int      `json:"open_shopping_count"`
	OpenShoppingItems []string `json:"open_shopping_items"`
}

// Build cruza el plan del día del usuario con el inventario y la lista de
// compras. Las tomas ajenas no cuentan como pendientes.
func Build(date string, plan []doseplan.PlannedDose, done map[string]struct{}, uid string, meds []medicines.Medicine, items []shopping.ShoppingItem, now time.Time) Snapshot {
	snap := Snapshot{
		Date:              date,
		Medicines:         []MedicineBrief{},
		OpenShoppingItems: []string{},
	}

	for _, d := range plan {
		if !targetsMember(d, uid) {
			continue
		}
		snap.TotalDoses++
		if _, ok := done[d.ID]; ok {
			continue
		}
		snap.PendingDoses++
		if snap.NextDoseTime == "" {
			// el plan ya viene ordenado por hora
			snap.NextDoseTime = d.Time
		}
	}

	snap.Medicines = briefMedicines(meds, now)

	for _, item := range items {
		if item.Done {
			continue
		}
		snap.OpenShoppingCount++
		if len(snap.OpenShoppingItems) < maxShoppingItems {
			snap.OpenShoppingItems = append(snap.OpenShoppingItems, item.Title)
		}
	}

	return snap
}

// briefMedicines prioriza lo que vence antes; sin vencimiento va al final.
func briefMedicines(meds []medicines.Medicine, now time.Time) []MedicineBrief {
	sorted := make([]medicines.Medicine, len(meds))
	copy(sorted, meds)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].ExpiresAt, sorted[j].ExpiresAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	out := make([]MedicineBrief, 0, maxMedicines)
	for _, m := range sorted {
		if len(out) == maxMedicines {
			break
		}
		brief := MedicineBrief{
			ID:       m.ID,
			Name:     m.Name,
			Quantity: medicines.FormatQuantity(m.QuantityValue, m.QuantityUnit, m.Quantity),
		}
		if m.ExpiresAt != nil {
			days := daysUntil(now, *m.ExpiresAt)
			brief.DaysLeft = &days
		}
		out = append(out, brief)
	}
	return out
}

// daysUntil cuenta días calendario entre hoy y el vencimiento; negativo si
// ya venció.
func daysUntil(now, expires time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(expires.Year(), expires.Month(), expires.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(day.Sub(today).Hours() / 24))
}

func targetsMember(d doseplan.PlannedDose, uid string) bool {
	if len(d.TargetMemberUIDs) == 0 {
		return true
	}
	for _, target := range d.TargetMemberUIDs {
		if target == uid {
			return true
		}
	}
	return false
}
