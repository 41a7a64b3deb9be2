package accounts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 6

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

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (UserProfile, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return UserProfile{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return UserProfile{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return UserProfile{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserProfile{}, err
	}

	now := s.now()
	p := UserProfile{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (UserProfile, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return UserProfile{}, ErrInvalidCredentials
	}

	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return UserProfile{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return UserProfile{}, ErrInvalidCredentials
	}
	return p, nil
}

func (s *Service) GetByUID(ctx context.Context, uid string) (UserProfile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return UserProfile{}, ErrInvalidInput
	}
	return s.repo.GetByUID(ctx, uid)
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	DisplayName *string
	PushToken   *string
}

func (s *Service) UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) (UserProfile, error) {
	p, err := s.GetByUID(ctx, uid)
	if err != nil {
		return UserProfile{}, err
	}

	if in.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.PushToken != nil {
		p.PushToken = strings.TrimSpace(*in.PushToken)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

func (s *Service) ChangePassword(ctx context.Context, uid, current, next string) error {
	p, err := s.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if len(next) < minPasswordLen {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.PasswordHash = string(hash)
	p.UpdatedAt = s.now()
	return s.repo.Update(ctx, p)
}

// AssignHousehold mueve al usuario a un hogar (registro o join por código).
func (s *Service) AssignHousehold(ctx context.Context, uid, householdID string) (UserProfile, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return UserProfile{}, ErrInvalidInput
	}

	p, err := s.GetByUID(ctx, uid)
	if err != nil {
		return UserProfile{}, err
	}

	p.HouseholdID = householdID
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

// ListByHousehold devuelve los miembros ordenados por nombre visible
// (comparación locale-aware, los nombres pueden estar en cirílico).
func (s *Service) ListByHousehold(ctx context.Context, householdID string) ([]UserProfile, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	col := collate.New(language.Und)
	sort.Slice(items, func(i, j int) bool {
		return col.CompareString(items[i].Name(), items[j].Name()) < 0
	})

	return items, nil
}

// IsMember valida que el usuario pertenezca al hogar indicado.
func (s *Service) IsMember(ctx context.Context, uid, householdID string) bool {
	p, err := s.GetByUID(ctx, uid)
	if err != nil {
		return false
	}
	return p.HouseholdID != "" && p.HouseholdID == strings.TrimSpace(householdID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
