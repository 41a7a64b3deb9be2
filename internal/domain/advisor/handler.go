package advisor

import (
	"encoding/json"
	"net/http"
	"strings"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, medicinesSvc *medicines.Service, accountsSvc *accounts.Service) {
	r.Post("/households/{householdID}/advisor", adviseHandler(medicinesSvc, accountsSvc))
}

type adviseRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type recommendationResponse struct {
	MedicineID string `json:"medicine_id"`
	Name       string `json:"name"`
	ForSymptom string `json:"for_symptom"`
}

type adviceResponse struct {
	DetectedSymptoms   []string                 `json:"detected_symptoms"`
	UrgentFlags        []string                 `json:"urgent_flags"`
	RecommendedFromKit []recommendationResponse `json:"recommended_from_kit"`
	MissingCategories  []string                 `json:"missing_categories"`
	SelfCareSteps      []string                 `json:"self_care_steps"`
	Summary            string                   `json:"summary"`
}

func adviseHandler(medicinesSvc *medicines.Service, accountsSvc *accounts.Service) http.HandlerFunc {
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

		var req adviseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}

		meds, err := medicinesSvc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		advice := BuildAdvice(req.Text, meds, Language(req.Language))
		writeJSON(w, http.StatusOK, toAdviceResponse(advice))
	}
}

func toAdviceResponse(a Advice) adviceResponse {
	out := adviceResponse{
		DetectedSymptoms:   make([]string, 0, len(a.DetectedSymptoms)),
		UrgentFlags:        a.UrgentFlags,
		RecommendedFromKit: make([]recommendationResponse, 0, len(a.RecommendedFromKit)),
		MissingCategories:  make([]string, 0, len(a.MissingCategories)),
		SelfCareSteps:      a.SelfCareSteps,
		Summary:            a.Summary,
	}
	for _, tag := range a.DetectedSymptoms {
		out.DetectedSymptoms = append(out.DetectedSymptoms, string(tag))
	}
	for _, rec := range a.RecommendedFromKit {
		out.RecommendedFromKit = append(out.RecommendedFromKit, recommendationResponse{
			MedicineID: rec.MedicineID,
			Name:       rec.Name,
			ForSymptom: string(rec.ForSymptom),
		})
	}
	for _, cat := range a.MissingCategories {
		out.MissingCategories = append(out.MissingCategories, string(cat))
	}
	if out.UrgentFlags == nil {
		out.UrgentFlags = []string{}
	}
	if out.SelfCareSteps == nil {
		out.SelfCareSteps = []string{}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
