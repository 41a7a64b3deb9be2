package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/domain/households"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// TokenIssuer emite el token de sesión tras register/login.
// Puede ser nil (modo dev): la respuesta simplemente no trae token.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, householdsSvc *households.Service, issuer TokenIssuer) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, householdsSvc, issuer))
		ar.Post("/login", loginHandler(svc, issuer))
	})

	r.Route("/me", func(mr chi.Router) {
		mr.Get("/", getMeHandler(svc))
		mr.Patch("/", updateMeHandler(svc))
		mr.Post("/password", changePasswordHandler(svc))
	})
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	HouseholdID string    `json:"household_id"`
	PushToken   string    `json:"push_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type sessionResponse struct {
	Token string          `json:"token,omitempty"`
	User  profileResponse `json:"user"`
}

type updateMeRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	DisplayName *string `json:"display_name"`
	PushToken   *string `json:"push_token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// registerHandler crea usuario + hogar propio, como el alta de la app:
// todo usuario nuevo arranca con un hogar del que es dueño.
func registerHandler(svc *Service, householdsSvc *households.Service, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				http.Error(w, "email already registered", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "email and password (6+ chars) required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		h, err := householdsSvc.CreateForUser(r.Context(), p.UID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		p, err = svc.AssignHousehold(r.Context(), p.UID, h.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeSession(w, http.StatusCreated, p, issuer)
	}
}

func loginHandler(svc *Service, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		writeSession(w, http.StatusOK, p, issuer)
	}
}

func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByUID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			DisplayName: req.DisplayName,
			PushToken:   req.PushToken,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func changePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, "current password does not match", http.StatusForbidden)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "new password too short", http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func writeSession(w http.ResponseWriter, status int, p UserProfile, issuer TokenIssuer) {
	resp := sessionResponse{User: toProfileResponse(p)}

	if issuer != nil {
		token, err := issuer.Issue(p.UID, p.Email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		resp.Token = token
	}

	writeJSON(w, status, resp)
}

func toProfileResponse(p UserProfile) profileResponse {
	return profileResponse{
		UID:         p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		HouseholdID: p.HouseholdID,
		PushToken:   p.PushToken,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado adrede en los handlers de cada módulo para no
// armar helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
