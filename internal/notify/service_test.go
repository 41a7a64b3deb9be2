package notify

import (
	"context"
	"testing"
	"time"

	mem "home-aidkit/internal/adapters/storage/memory"
	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/households"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/platform/logger"
	"home-aidkit/internal/ports/push"
)

func expiring(name string, expiresAt time.Time, remindDays int) medicines.Medicine {
	return medicines.Medicine{
		Name:             name,
		ExpiresAt:        &expiresAt,
		RemindDaysBefore: remindDays,
	}
}

func TestDueReminders_Window(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	meds := []medicines.Medicine{
		expiring("InWindow", today.AddDate(0, 0, 3), 7),
		expiring("Today", today.Add(2*time.Hour), 7),
		expiring("TooFar", today.AddDate(0, 0, 8), 7),
		expiring("Expired", today.AddDate(0, 0, -1), 7),
		{Name: "NoExpiry"},
	}

	due := DueReminders(meds, today)

	if len(due) != 2 {
		t.Fatalf("expected 2 reminders, got %d: %+v", len(due), due)
	}
	if due[0].Name != "InWindow" || due[0].DaysLeft != 3 {
		t.Fatalf("unexpected first reminder: %+v", due[0])
	}
	if due[1].Name != "Today" || due[1].DaysLeft != 0 {
		t.Fatalf("unexpected second reminder: %+v", due[1])
	}
}

func TestDueReminders_Texts(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	due := DueReminders([]medicines.Medicine{
		expiring("Ibuprofen", today.AddDate(0, 0, 2), 7),
		expiring("Aspirin", today, 7),
	}, today)

	if due[0].Title != "Medicine is expiring soon" || due[0].Body != "Ibuprofen - 2 day(s) left." {
		t.Fatalf("unexpected soon reminder: %+v", due[0])
	}
	if due[1].Title != "Medicine expires today" || due[1].Body != "Aspirin - please check this medicine." {
		t.Fatalf("unexpected today reminder: %+v", due[1])
	}
}

func TestDueReminders_ZeroRemindDays(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// remind 0 => avisa solo el mismo día
	due := DueReminders([]medicines.Medicine{
		expiring("OnlyToday", today, 0),
		expiring("Tomorrow", today.AddDate(0, 0, 1), 0),
	}, today)

	if len(due) != 1 || due[0].Name != "OnlyToday" {
		t.Fatalf("expected only same-day reminder, got %+v", due)
	}
}

// -------------------------
// Run end-to-end con fakes
// -------------------------

type captureSender struct {
	sent []push.Message
}

func (s *captureSender) Send(ctx context.Context, msgs []push.Message) error {
	s.sent = append(s.sent, msgs...)
	return nil
}

func TestService_Run_SendsToMembersWithTokens(t *testing.T) {
	ctx := context.Background()

	accountsRepo := mem.NewAccountsRepo()
	householdsRepo := mem.NewHouseholdsRepo()
	medicinesRepo := mem.NewMedicinesRepo()

	accountsSvc := accounts.NewService(accountsRepo)
	householdsSvc := households.NewService(householdsRepo)
	medicinesSvc := medicines.NewService(medicinesRepo)

	p, err := accountsSvc.Register(ctx, accounts.RegisterInput{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := householdsSvc.CreateForUser(ctx, p.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := accountsSvc.AssignHousehold(ctx, p.UID, h.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token := "ExponentPushToken[abc]"
	if _, err := accountsSvc.UpdateProfile(ctx, p.UID, accounts.UpdateProfileInput{PushToken: &token}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	soon := time.Now().AddDate(0, 0, 2)
	if _, err := medicinesSvc.Create(ctx, h.ID, medicines.Input{Name: "Ibuprofen", ExpiresAt: &soon}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sender := &captureSender{}
	svc := NewService(householdsSvc, medicinesSvc, accountsSvc, sender, logger.New(logger.Options{Level: logger.Error}))

	if err := svc.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.Token != token || msg.Title != "Medicine is expiring soon" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestService_Run_NilSenderIsNoop(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, logger.New(logger.Options{Level: logger.Error}))

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
}
