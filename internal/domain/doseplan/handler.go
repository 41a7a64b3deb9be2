package doseplan

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/middleware"
	"home-aidkit/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, tracker *Tracker, medicinesSvc *medicines.Service, accountsSvc *accounts.Service) {
	r.Route("/households/{householdID}/doseplan", func(dr chi.Router) {
		dr.Get("/today", todayPlanHandler(tracker, medicinesSvc, accountsSvc))
		dr.Post("/toggle", toggleDoseHandler(tracker, accountsSvc))
	})
}

type plannedDoseResponse struct {
	ID           string `json:"id"`
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Time         string `json:"time"`

	TargetMemberUIDs  []string `json:"target_member_uids"`
	TargetMemberNames []string `json:"target_member_names"`

	Done  bool `json:"done"`
	ForMe bool `json:"for_me"`
}

type todayPlanResponse struct {
	Date  string                `json:"date"`
	Doses []plannedDoseResponse `json:"doses"`
}

type toggleDoseRequest struct {
	DoseID string `json:"dose_id"`
}

type toggleDoseResponse struct {
	Date        string   `json:"date"`
	DoneDoseIDs []string `json:"done_dose_ids"`
}

// todayPlanHandler arma el plan del día para el hogar y lo cruza con las
// tomas que el usuario ya marcó. El done es personal; el plan, compartido.
func todayPlanHandler(tracker *Tracker, medicinesSvc *medicines.Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, uid, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		meds, err := medicinesSvc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		names := map[string]string{}
		if profiles, err := accountsSvc.ListByHousehold(r.Context(), householdID); err == nil {
			for _, p := range profiles {
				names[p.UID] = p.Name()
			}
		}

		plan := BuildTodayDosePlan(meds, func(memberUID string) string {
			if name, ok := names[memberUID]; ok {
				return name
			}
			return memberUID
		})

		done, err := tracker.LoadTodayDoneIDs(r.Context(), uid)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]plannedDoseResponse, 0, len(plan))
		for _, d := range plan {
			_, isDone := done[d.ID]
			out = append(out, plannedDoseResponse{
				ID:                d.ID,
				MedicineID:        d.MedicineID,
				MedicineName:      d.MedicineName,
				Time:              d.Time,
				TargetMemberUIDs:  d.TargetMemberUIDs,
				TargetMemberNames: d.TargetMemberNames,
				Done:              isDone,
				ForMe:             isForMember(d, uid),
			})
		}

		writeJSON(w, http.StatusOK, todayPlanResponse{
			Date:  tracker.Today(),
			Doses: out,
		})
	}
}

func toggleDoseHandler(tracker *Tracker, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, uid, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req toggleDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.DoseID) == "" {
			http.Error(w, "dose_id is required", http.StatusBadRequest)
			return
		}

		done, err := tracker.ToggleDoseDone(r.Context(), uid, req.DoseID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		metrics.DosesMarkedTotal.Inc()

		ids := make([]string, 0, len(done))
		for id := range done {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		writeJSON(w, http.StatusOK, toggleDoseResponse{
			Date:        tracker.Today(),
			DoneDoseIDs: ids,
		})
	}
}

// isForMember replica la regla de la pantalla de inicio: una toma sin
// destinatarios es de todos.
func isForMember(d PlannedDose, uid string) bool {
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

func authorizeMember(w http.ResponseWriter, r *http.Request, accountsSvc *accounts.Service) (householdID, uid string, ok bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	householdID = chi.URLParam(r, "householdID")
	if !accountsSvc.IsMember(r.Context(), claims.UserID, householdID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", "", false
	}
	return householdID, claims.UserID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
