package intakes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

const defaultListLimit = 50

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	ActorUID  string
	ActorName string
	Amount    float64
	Unit      string
	TakenAt   *time.Time
}

func (s *Service) Record(ctx context.Context, householdID, medicineID string, in RecordInput) (IntakeLog, error) {
	householdID = strings.TrimSpace(householdID)
	medicineID = strings.TrimSpace(medicineID)
	actorUID := strings.TrimSpace(in.ActorUID)

	if householdID == "" || medicineID == "" || actorUID == "" {
		return IntakeLog{}, ErrInvalidInput
	}

	amount := in.Amount
	if amount <= 0 {
		amount = 1
	}

	actorName := strings.TrimSpace(in.ActorName)
	if actorName == "" {
		actorName = actorUID
	}

	now := s.now()
	takenAt := now
	if in.TakenAt != nil && !in.TakenAt.IsZero() {
		takenAt = *in.TakenAt
	}

	l := IntakeLog{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		MedicineID:  medicineID,
		ActorUID:    actorUID,
		ActorName:   actorName,
		Amount:      amount,
		Unit:        strings.TrimSpace(in.Unit),
		TakenAt:     takenAt,
		CreatedAt:   now,
	}

	if err := s.repo.Add(ctx, l); err != nil {
		return IntakeLog{}, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, householdID, medicineID string, limit int) ([]IntakeLog, error) {
	if strings.TrimSpace(householdID) == "" || strings.TrimSpace(medicineID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListByMedicine(ctx, householdID, medicineID, limit)
}
