package emergency

import (
	"context"
	"errors"
	"strings"
	"time"
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

// Get devuelve el perfil de emergencia; si nunca se guardó, uno vacío.
func (s *Service) Get(ctx context.Context, householdID string) (Profile, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, householdID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{HouseholdID: householdID}, nil
		}
		return Profile{}, err
	}
	return p, nil
}

type SaveInput struct {
	ContactName  string
	ContactPhone string

	BloodType         string
	Allergies         string
	ChronicConditions string
	Address           string
	Notes             string
}

func (s *Service) Save(ctx context.Context, householdID string, in SaveInput) (Profile, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return Profile{}, ErrInvalidInput
	}

	p := Profile{
		HouseholdID:       householdID,
		ContactName:       strings.TrimSpace(in.ContactName),
		ContactPhone:      strings.TrimSpace(in.ContactPhone),
		BloodType:         strings.TrimSpace(in.BloodType),
		Allergies:         strings.TrimSpace(in.Allergies),
		ChronicConditions: strings.TrimSpace(in.ChronicConditions),
		Address:           strings.TrimSpace(in.Address),
		Notes:             strings.TrimSpace(in.Notes),
		UpdatedAt:         s.now(),
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
