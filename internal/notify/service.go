// Package notify revisa vencimientos y avisa a los miembros del hogar por
// push. La pasada es diaria; no guarda estado de envíos.
package notify

import (
	"context"
	"fmt"
	"time"

	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/households"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/platform/logger"
	"home-aidkit/internal/platform/metrics"
	"home-aidkit/internal/ports/push"
)

// Reminder es un aviso de vencimiento ya redactado, listo para despachar.
type Reminder struct {
	HouseholdID string
	MedicineID  string
	Name        string
	DaysLeft    int
	Title       string
	Body        string
}

// DueReminders calcula qué medicamentos entran en ventana de aviso hoy.
// La ventana es [0, RemindDaysBefore] días calendario; lo ya vencido no
// genera aviso.
func DueReminders(meds []medicines.Medicine, today time.Time) []Reminder {
	out := make([]Reminder, 0)
	for _, m := range meds {
		if m.ExpiresAt == nil {
			continue
		}
		daysLeft := daysUntil(today, *m.ExpiresAt)
		if daysLeft < 0 || daysLeft > m.RemindDaysBefore {
			continue
		}

		rem := Reminder{
			HouseholdID: m.HouseholdID,
			MedicineID:  m.ID,
			Name:        m.Name,
			DaysLeft:    daysLeft,
		}
		if daysLeft == 0 {
			rem.Title = "Medicine expires today"
			rem.Body = fmt.Sprintf("%s - please check this medicine.", m.Name)
		} else {
			rem.Title = "Medicine is expiring soon"
			rem.Body = fmt.Sprintf("%s - %d day(s) left.", m.Name, daysLeft)
		}
		out = append(out, rem)
	}
	return out
}

func daysUntil(now, expires time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(expires.Year(), expires.Month(), expires.Day(), 0, 0, 0, 0, now.Location())
	return int(day.Sub(today).Hours() / 24)
}

type Service struct {
	householdsSvc *households.Service
	medicinesSvc  *medicines.Service
	accountsSvc   *accounts.Service
	sender        push.Sender
	log           logger.Logger
	now           func() time.Time
}

func NewService(householdsSvc *households.Service, medicinesSvc *medicines.Service, accountsSvc *accounts.Service, sender push.Sender, log logger.Logger) *Service {
	return &Service{
		householdsSvc: householdsSvc,
		medicinesSvc:  medicinesSvc,
		accountsSvc:   accountsSvc,
		sender:        sender,
		log:           log,
		now:           time.Now,
	}
}

// Run hace una pasada completa: todos los hogares, todos los vencimientos.
// Un hogar que falla no corta el resto.
func (s *Service) Run(ctx context.Context) error {
	if s.sender == nil {
		s.log.Debug("push sender not configured, skipping reminder run", nil)
		return nil
	}

	ids, err := s.householdsSvc.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list households: %w", err)
	}

	today := s.now()
	sent := 0
	for _, householdID := range ids {
		n, err := s.runHousehold(ctx, householdID, today)
		if err != nil {
			s.log.Warn("reminder run failed for household", map[string]any{
				"household_id": householdID,
				"error":        err.Error(),
			})
			continue
		}
		sent += n
	}

	s.log.Info("reminder run finished", map[string]any{
		"households": len(ids),
		"sent":       sent,
	})
	return nil
}

func (s *Service) runHousehold(ctx context.Context, householdID string, today time.Time) (int, error) {
	meds, err := s.medicinesSvc.List(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("list medicines: %w", err)
	}

	due := DueReminders(meds, today)
	if len(due) == 0 {
		return 0, nil
	}

	profiles, err := s.accountsSvc.ListByHousehold(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("list members: %w", err)
	}

	msgs := make([]push.Message, 0, len(due)*len(profiles))
	for _, rem := range due {
		for _, p := range profiles {
			if p.PushToken == "" {
				continue
			}
			msgs = append(msgs, push.Message{
				Token: p.PushToken,
				Title: rem.Title,
				Body:  rem.Body,
			})
		}
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	if err := s.sender.Send(ctx, msgs); err != nil {
		return 0, fmt.Errorf("send push: %w", err)
	}

	metrics.RemindersSentTotal.Add(float64(len(msgs)))
	return len(msgs), nil
}
