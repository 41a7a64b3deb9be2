package households

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Member es la vista mínima de un perfil que necesita este módulo.
// El directorio real vive en accounts; acá solo se consume la interfaz
// para no invertir la dependencia entre paquetes.
type Member struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MemberDirectory interface {
	HouseholdOf(ctx context.Context, uid string) (string, error)
	ListMembers(ctx context.Context, householdID string) ([]Member, error)
	JoinHousehold(ctx context.Context, uid, householdID string) error
}

func RegisterRoutes(r chi.Router, svc *Service, dir MemberDirectory) {
	r.Route("/households", func(hr chi.Router) {
		hr.Post("/join", joinHandler(svc, dir))
		hr.Get("/{householdID}", getHouseholdHandler(svc, dir))
		hr.Get("/{householdID}/members", listMembersHandler(dir))
	})
}

type householdResponse struct {
	ID        string    `json:"id"`
	OwnerUID  string    `json:"owner_uid"`
	JoinCode  string    `json:"join_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type joinRequest struct {
	Code string `json:"code"`
}

func getHouseholdHandler(svc *Service, dir MemberDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		householdID := chi.URLParam(r, "householdID")

		if !isMember(r.Context(), dir, claims.UserID, householdID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		h, err := svc.GetByID(r.Context(), householdID)
		if err != nil {
			http.Error(w, "household not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toHouseholdResponse(h))
	}
}

func listMembersHandler(dir MemberDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		householdID := chi.URLParam(r, "householdID")

		if !isMember(r.Context(), dir, claims.UserID, householdID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		members, err := dir.ListMembers(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if members == nil {
			members = []Member{}
		}

		writeJSON(w, http.StatusOK, members)
	}
}

// joinHandler mueve al usuario al hogar del código. El hogar anterior queda
// tal cual: las medicinas pertenecen al hogar, no al usuario.
func joinHandler(svc *Service, dir MemberDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.FindByJoinCode(r.Context(), req.Code)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "code is required", http.StatusBadRequest)
			default:
				http.Error(w, "no household with that code", http.StatusNotFound)
			}
			return
		}

		if err := dir.JoinHousehold(r.Context(), claims.UserID, h.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toHouseholdResponse(h))
	}
}

func isMember(ctx context.Context, dir MemberDirectory, uid, householdID string) bool {
	if strings.TrimSpace(householdID) == "" {
		return false
	}
	current, err := dir.HouseholdOf(ctx, uid)
	return err == nil && current == householdID
}

func toHouseholdResponse(h Household) householdResponse {
	return householdResponse{
		ID:        h.ID,
		OwnerUID:  h.OwnerUID,
		JoinCode:  h.JoinCode,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
