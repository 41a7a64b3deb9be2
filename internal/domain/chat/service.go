package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyText    = errors.New("message text is empty")
	ErrTextTooLong  = errors.New("message text exceeds 1000 characters")
)

const (
	maxTextLen       = 1000
	defaultListLimit = 100
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

func (s *Service) Send(ctx context.Context, householdID, authorUID, authorName, text string) (HouseholdMessage, error) {
	householdID = strings.TrimSpace(householdID)
	authorUID = strings.TrimSpace(authorUID)
	if householdID == "" || authorUID == "" {
		return HouseholdMessage{}, ErrInvalidInput
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return HouseholdMessage{}, ErrEmptyText
	}
	if len([]rune(text)) > maxTextLen {
		return HouseholdMessage{}, ErrTextTooLong
	}

	authorName = strings.TrimSpace(authorName)
	if authorName == "" {
		authorName = "Unknown"
	}

	m := HouseholdMessage{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		AuthorUID:   authorUID,
		AuthorName:  authorName,
		Text:        text,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Add(ctx, m); err != nil {
		return HouseholdMessage{}, err
	}
	return m, nil
}

// List devuelve los últimos mensajes en orden cronológico (viejo -> nuevo),
// listo para pintar el hilo.
func (s *Service) List(ctx context.Context, householdID string, limit int) ([]HouseholdMessage, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	items, err := s.repo.ListRecent(ctx, householdID, limit)
	if err != nil {
		return nil, err
	}

	// el repo entrega desc; invertimos como hace la app
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}
