package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service) {
	r.Route("/households/{householdID}/messages", func(cr chi.Router) {
		cr.Get("/", listMessagesHandler(svc, accountsSvc))
		cr.Post("/", sendMessageHandler(svc, accountsSvc))
	})
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	AuthorUID  string    `json:"author_uid"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// listMessagesHandler devuelve los últimos mensajes en orden cronológico,
// listos para pintar de arriba hacia abajo.
func listMessagesHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		msgs, err := svc.List(r.Context(), householdID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]messageResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessageResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func sendMessageHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, uid, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		authorName := ""
		if p, err := accountsSvc.GetByUID(r.Context(), uid); err == nil {
			authorName = p.Name()
		}

		m, err := svc.Send(r.Context(), householdID, uid, authorName, req.Text)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyText):
				http.Error(w, "message text is empty", http.StatusBadRequest)
			case errors.Is(err, ErrTextTooLong):
				http.Error(w, "message text exceeds 1000 characters", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toMessageResponse(m))
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

func toMessageResponse(m HouseholdMessage) messageResponse {
	return messageResponse{
		ID:         m.ID,
		AuthorUID:  m.AuthorUID,
		AuthorName: m.AuthorName,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
