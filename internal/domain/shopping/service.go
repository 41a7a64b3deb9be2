package shopping

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

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

type CreateInput struct {
	Title    string
	Quantity string
	Priority string
}

func (s *Service) Create(ctx context.Context, householdID, createdByUID string, in CreateInput) (ShoppingItem, error) {
	householdID = strings.TrimSpace(householdID)
	createdByUID = strings.TrimSpace(createdByUID)
	title := strings.TrimSpace(in.Title)

	if householdID == "" || createdByUID == "" || title == "" {
		return ShoppingItem{}, ErrInvalidInput
	}

	now := s.now()
	item := ShoppingItem{
		ID:           uuid.NewString(),
		HouseholdID:  householdID,
		Title:        title,
		Quantity:     strings.TrimSpace(in.Quantity),
		Done:         false,
		Priority:     normalizePriority(in.Priority),
		CreatedByUID: createdByUID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return ShoppingItem{}, err
	}
	return item, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Title    *string
	Quantity *string
	Priority *string
	Done     *bool
}

func (s *Service) Update(ctx context.Context, householdID, id string, in UpdateInput) (ShoppingItem, error) {
	item, err := s.repo.GetByID(ctx, householdID, id)
	if err != nil {
		return ShoppingItem{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return ShoppingItem{}, ErrInvalidInput
		}
		item.Title = title
	}
	if in.Quantity != nil {
		item.Quantity = strings.TrimSpace(*in.Quantity)
	}
	if in.Priority != nil {
		item.Priority = normalizePriority(*in.Priority)
	}
	if in.Done != nil {
		item.Done = *in.Done
	}
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return ShoppingItem{}, err
	}
	return item, nil
}

// Toggle invierte el estado done.
func (s *Service) Toggle(ctx context.Context, householdID, id string) (ShoppingItem, error) {
	item, err := s.repo.GetByID(ctx, householdID, id)
	if err != nil {
		return ShoppingItem{}, err
	}

	item.Done = !item.Done
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return ShoppingItem{}, err
	}
	return item, nil
}

// List devuelve los ítems del hogar, más recientes primero.
func (s *Service) List(ctx context.Context, householdID string) ([]ShoppingItem, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, householdID, id)
}

func normalizePriority(raw string) Priority {
	if Priority(strings.TrimSpace(raw)) == PriorityHigh {
		return PriorityHigh
	}
	return PriorityNormal
}
