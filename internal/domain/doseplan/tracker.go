package doseplan

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"home-aidkit/internal/ports/kv"
)

const trackerKeyPrefix = "dose_tracker/v1/"

// trackerState es el blob persistido: un registro por usuario y por día.
// Se pisa entero en cada rollover, nunca se borra.
type trackerState struct {
	Date        string   `json:"date"`
	DoneDoseIDs []string `json:"doneDoseIds"`
}

// Tracker lleva el set de tomas marcadas como hechas del día calendario
// actual (fecha local). Al cambiar el día el registro se resetea solo,
// de forma perezosa en la próxima lectura.
type Tracker struct {
	store kv.Store
	now   func() time.Time

	// serializa el read-modify-write del blob; los handlers HTTP pueden
	// llegar concurrentes aunque la UI de un usuario no lo haga.
	mu sync.Mutex
}

func NewTracker(store kv.Store) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// LoadTodayDoneIDs devuelve los IDs marcados hoy. Si el registro guardado
// es de otro día, no existe o está corrupto, lo resetea a vacío.
func (t *Tracker) LoadTodayDoneIDs(ctx context.Context, userUID string) (map[string]struct{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.dateKeyLocal()
	state := t.readState(ctx, userUID)

	if state == nil || state.Date != today {
		if err := t.writeState(ctx, userUID, trackerState{Date: today, DoneDoseIDs: []string{}}); err != nil {
			return nil, err
		}
		return map[string]struct{}{}, nil
	}

	return toSet(state.DoneDoseIDs), nil
}

// ToggleDoseDone invierte la membresía de doseID en el set de hoy y
// devuelve el set resultante. Aplica el mismo rollover que la lectura.
func (t *Tracker) ToggleDoseDone(ctx context.Context, userUID, doseID string) (map[string]struct{}, error) {
	doseID = strings.TrimSpace(doseID)
	if doseID == "" {
		return nil, errors.New("dose id required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.dateKeyLocal()
	state := t.readState(ctx, userUID)

	done := map[string]struct{}{}
	if state != nil && state.Date == today {
		done = toSet(state.DoneDoseIDs)
	}

	if _, ok := done[doseID]; ok {
		delete(done, doseID)
	} else {
		done[doseID] = struct{}{}
	}

	ids := make([]string, 0, len(done))
	for id := range done {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if err := t.writeState(ctx, userUID, trackerState{Date: today, DoneDoseIDs: ids}); err != nil {
		return nil, err
	}
	return done, nil
}

// Today devuelve la fecha local que usa el tracker como clave de corte.
func (t *Tracker) Today() string {
	return t.dateKeyLocal()
}

func (t *Tracker) dateKeyLocal() string {
	return t.now().Format("2006-01-02")
}

func (t *Tracker) key(userUID string) string {
	return trackerKeyPrefix + userUID
}

// readState devuelve nil ante clave ausente o blob malformado: ambos
// disparan un registro fresco, no un error.
func (t *Tracker) readState(ctx context.Context, userUID string) *trackerState {
	raw, err := t.store.Get(ctx, t.key(userUID))
	if err != nil {
		return nil
	}

	var state trackerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil
	}
	if state.Date == "" || state.DoneDoseIDs == nil {
		return nil
	}
	return &state
}

func (t *Tracker) writeState(ctx context.Context, userUID string, state trackerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, t.key(userUID), raw)
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
