package households

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type Service struct {
	repo Repository
	now  func() time.Time

	// inyectable en tests para códigos deterministas
	codeFn func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		codeFn: GenerateJoinCode,
	}
}

// GenerateJoinCode arma un código de 6 caracteres en mayúsculas.
func GenerateJoinCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = joinCodeAlphabet[rand.IntN(len(joinCodeAlphabet))]
	}
	return string(b)
}

// CreateForUser crea un hogar nuevo con el usuario como dueño.
func (s *Service) CreateForUser(ctx context.Context, ownerUID string) (Household, error) {
	ownerUID = strings.TrimSpace(ownerUID)
	if ownerUID == "" {
		return Household{}, ErrInvalidInput
	}

	now := s.now()
	h := Household{
		ID:        uuid.NewString(),
		OwnerUID:  ownerUID,
		JoinCode:  s.codeFn(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Household{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Household, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Household{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// FindByJoinCode busca un hogar por código (trim + mayúsculas).
func (s *Service) FindByJoinCode(ctx context.Context, code string) (Household, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Household{}, ErrInvalidInput
	}

	h, err := s.repo.GetByJoinCode(ctx, code)
	if err != nil {
		return Household{}, ErrNotFound
	}
	return h, nil
}

func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListIDs(ctx)
}
