package shopping

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service) {
	r.Route("/households/{householdID}/shopping", func(sr chi.Router) {
		sr.Get("/", listItemsHandler(svc, accountsSvc))
		sr.Post("/", createItemHandler(svc, accountsSvc))
		sr.Patch("/{itemID}", updateItemHandler(svc, accountsSvc))
		sr.Post("/{itemID}/toggle", toggleItemHandler(svc, accountsSvc))
		sr.Delete("/{itemID}", deleteItemHandler(svc, accountsSvc))
	})
}

type createItemRequest struct {
	Title    string `json:"title"`
	Quantity string `json:"quantity"`
	Priority string `json:"priority"`
}

type updateItemRequest struct {
	Title    *string `json:"title"`
	Quantity *string `json:"quantity"`
	Priority *string `json:"priority"`
	Done     *bool   `json:"done"`
}

type itemResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Quantity     string    `json:"quantity,omitempty"`
	Done         bool      `json:"done"`
	Priority     string    `json:"priority"`
	CreatedByUID string    `json:"created_by_uid"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func listItemsHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, toItemResponse(item))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createItemHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, uid, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		item, err := svc.Create(r.Context(), householdID, uid, CreateInput{
			Title:    req.Title,
			Quantity: req.Quantity,
			Priority: req.Priority,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "title is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toItemResponse(item))
	}
}

func updateItemHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req updateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		item, err := svc.Update(r.Context(), householdID, chi.URLParam(r, "itemID"), UpdateInput{
			Title:    req.Title,
			Quantity: req.Quantity,
			Priority: req.Priority,
			Done:     req.Done,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "item not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "title cannot be empty", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(item))
	}
}

func toggleItemHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		item, err := svc.Toggle(r.Context(), householdID, chi.URLParam(r, "itemID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "item not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(item))
	}
}

func deleteItemHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, _, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), householdID, chi.URLParam(r, "itemID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "item not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
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

func toItemResponse(item ShoppingItem) itemResponse {
	return itemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Quantity:     item.Quantity,
		Done:         item.Done,
		Priority:     string(item.Priority),
		CreatedByUID: item.CreatedByUID,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
