package widgetfeed

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/doseplan"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/domain/shopping"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, tracker *doseplan.Tracker, medicinesSvc *medicines.Service, shoppingSvc *shopping.Service, accountsSvc *accounts.Service) {
	r.Get("/households/{householdID}/widget", widgetHandler(tracker, medicinesSvc, shoppingSvc, accountsSvc))
}

func widgetHandler(tracker *doseplan.Tracker, medicinesSvc *medicines.Service, shoppingSvc *shopping.Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		householdID := chi.URLParam(r, "householdID")
		if !accountsSvc.IsMember(r.Context(), claims.UserID, householdID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		meds, err := medicinesSvc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		items, err := shoppingSvc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		done, err := tracker.LoadTodayDoneIDs(r.Context(), claims.UserID)
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
		plan := doseplan.BuildTodayDosePlan(meds, func(uid string) string {
			if name, ok := names[uid]; ok {
				return name
			}
			return uid
		})

		snap := Build(tracker.Today(), plan, done, claims.UserID, meds, items, time.Now())
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
