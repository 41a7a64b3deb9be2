// Package doseplan arma el plan de tomas "de hoy" a partir de los horarios
// escritos en cada medicamento, y lleva el registro de tomas completadas
// del día (ver tracker.go).
package doseplan

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"home-aidkit/internal/domain/medicines"
)

// PlannedDose es una toma planificada: (medicamento, horario, asignado).
// Cero o un asignado por fila; lista vacía = cualquiera del hogar.
//
// El ID es determinista ("medicineId|HH:MM" o "medicineId|HH:MM|uid"):
// es la identidad contra la que se marca la toma como hecha, así que el
// mismo plan recalculado en el día produce los mismos IDs.
type PlannedDose struct {
	ID           string
	MedicineID   string
	MedicineName string

	TargetMemberUIDs  []string
	TargetMemberNames []string

	Time   string
	Hour   int
	Minute int
}

// ResolveMemberName mapea uid -> nombre visible; string vacío = no resuelto.
type ResolveMemberName func(uid string) string

// horario estricto: minutos siempre con dos dígitos, hora 0-23
var timeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

type timePoint struct {
	hour   int
	minute int
	time   string
}

// BuildTodayDosePlan expande los medicamentos en la lista plana de tomas de
// hoy. Función pura: tokens malformados se filtran en silencio, nunca error.
// Todo medicamento con horarios se trata como pauta diaria recurrente.
func BuildTodayDosePlan(meds []medicines.Medicine, resolve ResolveMemberName) []PlannedDose {
	doses := make([]PlannedDose, 0)

	for _, med := range meds {
		fallbackUIDs := normalizeMemberUIDs(med.IntakeMemberUIDs)
		byTime := normalizeMembersByTime(med.IntakeMembersByTime)

		for _, tp := range parseIntakeTimes(med.IntakeTimes) {
			targetUIDs := fallbackUIDs
			if uids, ok := byTime[tp.time]; ok && len(uids) > 0 {
				// una entrada explícita por horario pisa la lista general
				targetUIDs = uids
			}

			if len(targetUIDs) == 0 {
				doses = append(doses, PlannedDose{
					ID:                doseID(med.ID, tp.time, ""),
					MedicineID:        med.ID,
					MedicineName:      med.Name,
					TargetMemberUIDs:  []string{},
					TargetMemberNames: []string{},
					Time:              tp.time,
					Hour:              tp.hour,
					Minute:            tp.minute,
				})
				continue
			}

			for _, uid := range targetUIDs {
				names := []string{}
				if resolve != nil {
					if name := strings.TrimSpace(resolve(uid)); name != "" {
						names = []string{name}
					}
				}
				doses = append(doses, PlannedDose{
					ID:                doseID(med.ID, tp.time, uid),
					MedicineID:        med.ID,
					MedicineName:      med.Name,
					TargetMemberUIDs:  []string{uid},
					TargetMemberNames: names,
					Time:              tp.time,
					Hour:              tp.hour,
					Minute:            tp.minute,
				})
			}
		}
	}

	col := collate.New(language.Und)
	sort.Slice(doses, func(i, j int) bool {
		a, b := doses[i], doses[j]

		if byTime := (a.Hour*60 + a.Minute) - (b.Hour*60 + b.Minute); byTime != 0 {
			return byTime < 0
		}
		if byName := col.CompareString(a.MedicineName, b.MedicineName); byName != 0 {
			return byName < 0
		}
		return col.CompareString(firstName(a), firstName(b)) < 0
	})

	return doses
}

func doseID(medicineID, t, memberUID string) string {
	if memberUID == "" {
		return fmt.Sprintf("%s|%s", medicineID, t)
	}
	return fmt.Sprintf("%s|%s|%s", medicineID, t, memberUID)
}

func firstName(d PlannedDose) string {
	if len(d.TargetMemberNames) > 0 {
		return d.TargetMemberNames[0]
	}
	return ""
}

// parseIntakeTimes parsea "8:00, 20:30" a puntos horarios canónicos,
// descartando tokens malformados y duplicados por "HH:MM" canónico.
func parseIntakeTimes(raw string) []timePoint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]timePoint, 0)

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		m := timeRe.FindStringSubmatch(token)
		if m == nil {
			continue
		}

		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		canonical := fmt.Sprintf("%02d:%02d", hour, minute)

		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}

		out = append(out, timePoint{hour: hour, minute: minute, time: canonical})
	}

	return out
}

func normalizeMemberUIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// normalizeMembersByTime descarta claves que no son horarios válidos y
// normaliza las listas de uids. Las claves quedan tal cual (no se
// canonicalizan): una clave "9:30" nunca matchea el punto "09:30",
// igual que en la app.
func normalizeMembersByTime(value map[string][]string) map[string][]string {
	if len(value) == 0 {
		return nil
	}

	out := make(map[string][]string, len(value))
	for t, members := range value {
		if !timeRe.MatchString(t) {
			continue
		}
		out[t] = normalizeMemberUIDs(members)
	}
	return out
}
