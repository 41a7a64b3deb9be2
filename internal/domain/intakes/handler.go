package intakes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service) {
	r.Route("/households/{householdID}/medicines/{medicineID}/intakes", func(ir chi.Router) {
		ir.Get("/", listIntakesHandler(svc, accountsSvc))
		ir.Post("/", recordIntakeHandler(svc, accountsSvc))
	})
}

type recordIntakeRequest struct {
	Amount  float64    `json:"amount"`
	Unit    string     `json:"unit"`
	TakenAt *time.Time `json:"taken_at"`
}

type intakeResponse struct {
	ID         string    `json:"id"`
	MedicineID string    `json:"medicine_id"`
	ActorUID   string    `json:"actor_uid"`
	ActorName  string    `json:"actor_name"`
	Amount     float64   `json:"amount"`
	Unit       string    `json:"unit,omitempty"`
	TakenAt    time.Time `json:"taken_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func listIntakesHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := svc.List(r.Context(), householdID, chi.URLParam(r, "medicineID"), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]intakeResponse, 0, len(logs))
		for _, l := range logs {
			out = append(out, toIntakeResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func recordIntakeHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, uid, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req recordIntakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		actorName := uid
		if p, err := accountsSvc.GetByUID(r.Context(), uid); err == nil {
			actorName = p.Name()
		}

		l, err := svc.Record(r.Context(), householdID, chi.URLParam(r, "medicineID"), RecordInput{
			ActorUID:  uid,
			ActorName: actorName,
			Amount:    req.Amount,
			Unit:      req.Unit,
			TakenAt:   req.TakenAt,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toIntakeResponse(l))
	}
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

func toIntakeResponse(l IntakeLog) intakeResponse {
	return intakeResponse{
		ID:         l.ID,
		MedicineID: l.MedicineID,
		ActorUID:   l.ActorUID,
		ActorName:  l.ActorName,
		Amount:     l.Amount,
		Unit:       l.Unit,
		TakenAt:    l.TakenAt,
		CreatedAt:  l.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
