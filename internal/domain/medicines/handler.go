package medicines

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/intakes"
	"home-aidkit/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// DoseGuard decide si quien solicita puede descontar una unidad: las tomas
// de hoy asignadas a otros miembros bloquean el consumo hasta completarse.
type DoseGuard interface {
	CanUseNow(ctx context.Context, m Medicine, userUID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, accountsSvc *accounts.Service, intakesSvc *intakes.Service, guard DoseGuard) {
	r.Route("/households/{householdID}/medicines", func(mr chi.Router) {
		mr.Get("/", listMedicinesHandler(svc, accountsSvc))
		mr.Post("/", createMedicineHandler(svc, accountsSvc))
		mr.Get("/{medicineID}", getMedicineHandler(svc, accountsSvc))
		mr.Put("/{medicineID}", updateMedicineHandler(svc, accountsSvc))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc, accountsSvc))
		mr.Post("/{medicineID}/use", useOneHandler(svc, accountsSvc, intakesSvc, guard))
	})
}

type medicineRequest struct {
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	DosageForm string `json:"dosage_form"`

	Quantity      string   `json:"quantity"`
	QuantityValue *float64 `json:"quantity_value"`
	QuantityUnit  string   `json:"quantity_unit"`

	Notes   string `json:"notes"`
	Barcode string `json:"barcode"`

	ExpiresAt        *time.Time `json:"expires_at"`
	RemindDaysBefore *int       `json:"remind_days_before"`

	IntakeTimes         string              `json:"intake_times"`
	IntakeMemberUIDs    []string            `json:"intake_member_uids"`
	IntakeMembersByTime map[string][]string `json:"intake_members_by_time"`
}

type medicineResponse struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	Name        string `json:"name"`
	Dosage      string `json:"dosage,omitempty"`
	DosageForm  string `json:"dosage_form,omitempty"`

	Quantity      string   `json:"quantity,omitempty"`
	QuantityValue *float64 `json:"quantity_value,omitempty"`
	QuantityUnit  string   `json:"quantity_unit"`

	Notes   string `json:"notes,omitempty"`
	Barcode string `json:"barcode,omitempty"`

	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	RemindDaysBefore int        `json:"remind_days_before"`

	IntakeTimes         string              `json:"intake_times,omitempty"`
	IntakeMemberUIDs    []string            `json:"intake_member_uids,omitempty"`
	IntakeMembersByTime map[string][]string `json:"intake_members_by_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listMedicinesHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		meds, err := svc.List(r.Context(), householdID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicineResponse, 0, len(meds))
		for _, m := range meds {
			out = append(out, toMedicineResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createMedicineHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req medicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), householdID, toInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "name must have at least 2 characters", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

func getMedicineHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		m, err := svc.GetByID(r.Context(), householdID, chi.URLParam(r, "medicineID"))
		if err != nil {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

func updateMedicineHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		var req medicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), householdID, chi.URLParam(r, "medicineID"), toInput(req))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "name must have at least 2 characters", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

func deleteMedicineHandler(svc *Service, accountsSvc *accounts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), householdID, chi.URLParam(r, "medicineID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "medicine not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// useOneHandler descuenta una unidad y deja registro de quién la tomó,
// todo en una sola llamada como hace la pantalla de inicio de la app.
func useOneHandler(svc *Service, accountsSvc *accounts.Service, intakesSvc *intakes.Service, guard DoseGuard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID, ok := authorizeMember(w, r, accountsSvc)
		if !ok {
			return
		}
		claims, _ := middleware.GetClaims(r.Context())
		medicineID := chi.URLParam(r, "medicineID")

		if guard != nil {
			current, err := svc.GetByID(r.Context(), householdID, medicineID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					http.Error(w, "medicine not found", http.StatusNotFound)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			allowed, err := guard.CanUseNow(r.Context(), current, claims.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "medicine assigned to another family member today", http.StatusConflict)
				return
			}
		}

		m, err := svc.UseOne(r.Context(), householdID, medicineID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
			case errors.Is(err, ErrNoQuantity):
				http.Error(w, "medicine has no numeric quantity", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		actorName := claims.UserID
		if p, err := accountsSvc.GetByUID(r.Context(), claims.UserID); err == nil {
			actorName = p.Name()
		}

		// El registro de consumo es best effort: no deshace el descuento.
		_, err = intakesSvc.Record(r.Context(), householdID, m.ID, intakes.RecordInput{
			ActorUID:  claims.UserID,
			ActorName: actorName,
			Amount:    1,
			Unit:      string(m.QuantityUnit),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

// authorizeMember resuelve el hogar de la URL y corta con 401/403 si el
// usuario no pertenece. Devuelve ok=false cuando ya respondió.
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

func toInput(req medicineRequest) Input {
	return Input{
		Name:                req.Name,
		Dosage:              req.Dosage,
		DosageForm:          req.DosageForm,
		Quantity:            req.Quantity,
		QuantityValue:       req.QuantityValue,
		QuantityUnit:        req.QuantityUnit,
		Notes:               req.Notes,
		Barcode:             req.Barcode,
		ExpiresAt:           req.ExpiresAt,
		RemindDaysBefore:    req.RemindDaysBefore,
		IntakeTimes:         req.IntakeTimes,
		IntakeMemberUIDs:    req.IntakeMemberUIDs,
		IntakeMembersByTime: req.IntakeMembersByTime,
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	return medicineResponse{
		ID:                  m.ID,
		HouseholdID:         m.HouseholdID,
		Name:                m.Name,
		Dosage:              m.Dosage,
		DosageForm:          m.DosageForm,
		Quantity:            m.Quantity,
		QuantityValue:       m.QuantityValue,
		QuantityUnit:        string(m.QuantityUnit),
		Notes:               m.Notes,
		Barcode:             m.Barcode,
		ExpiresAt:           m.ExpiresAt,
		RemindDaysBefore:    m.RemindDaysBefore,
		IntakeTimes:         m.IntakeTimes,
		IntakeMemberUIDs:    m.IntakeMemberUIDs,
		IntakeMembersByTime: m.IntakeMembersByTime,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
