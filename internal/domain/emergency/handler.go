package emergency

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service) {
	r.Route("/households/{householdID}/emergency", func(er chi.Router) {
		er.Get("/", getProfileHandler(svc, accountsSvc))
		er.Put("/", saveProfileHandler(svc, accountsSvc))
	})
}

type profileRequest struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`

	BloodType         string `json:"blood_type"`
	Allergies         string `json:"allergies"`
	ChronicConditions string `json:"chronic_conditions"`
	Address           string `json:"address"`
	Notes             string `json:"notes"`
}

type profileResponse struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`

	BloodType         string `json:"blood_type"`
	Allergies         string `json:"allergies"`
	ChronicConditions string `json:"chronic_conditions"`
	Address           string `json:"address"`
	Notes             string `json:"notes"`

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func getProfileHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		p, err := svc.Get(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func saveProfileHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Save(r.Context(), householdID, SaveInput{
			ContactName:       req.ContactName,
			ContactPhone:      req.ContactPhone,
			BloodType:         req.BloodType,
			Allergies:         req.Allergies,
			ChronicConditions: req.ChronicConditions,
			Address:           req.Address,
			Notes:             req.Notes,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func authorizeMember(w http.ResponseWriter, r *http.Request, accountsSvc *accounts.Service) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	householdID := chi.URLParam(r, "householdID")
	if !accountsSvc.IsMember(r.Context(), claims.UserID, householdID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return householdID, true
}

func toProfileResponse(p Profile) profileResponse {
	out := profileResponse{
		ContactName:       p.ContactName,
		ContactPhone:      p.ContactPhone,
		BloodType:         p.BloodType,
		Allergies:         p.Allergies,
		ChronicConditions: p.ChronicConditions,
		Address:           p.Address,
		Notes:             p.Notes,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
