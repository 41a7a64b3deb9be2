package medicines

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNoQuantity   = errors.New("quantity is not numeric")
)

const defaultRemindDays = 7

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

type Input struct {
	Name       string
	Dosage     string
	DosageForm string

	Quantity      string
	QuantityValue *float64
	QuantityUnit  string

	Notes   string
	Barcode string

	ExpiresAt        *time.Time
	RemindDaysBefore *int

	IntakeTimes         string
	IntakeMemberUIDs    []string
	IntakeMembersByTime map[string][]string
}

func (s *Service) Create(ctx context.Context, householdID string, in Input) (Medicine, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return Medicine{}, ErrInvalidInput
	}

	norm, err := normalizeInput(in)
	if err != nil {
		return Medicine{}, err
	}

	now := s.now()
	m := Medicine{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyInput(&m, norm)

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, householdID, id string, in Input) (Medicine, error) {
	current, err := s.GetByID(ctx, householdID, id)
	if err != nil {
		return Medicine{}, err
	}

	norm, err := normalizeInput(in)
	if err != nil {
		return Medicine{}, err
	}

	applyInput(&current, norm)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Medicine{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, householdID, id string) (Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medicine{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, householdID, id)
}

// List devuelve los medicamentos del hogar, más recientes primero.
func (s *Service) List(ctx context.Context, householdID string) ([]Medicine, error) {
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

// UseOne descuenta una unidad y devuelve el medicamento actualizado.
// Si ni QuantityValue ni el texto Quantity dan un número => ErrNoQuantity.
func (s *Service) UseOne(ctx context.Context, householdID, id string) (Medicine, error) {
	m, err := s.GetByID(ctx, householdID, id)
	if err != nil {
		return Medicine{}, err
	}

	current := m.QuantityValue
	if current == nil {
		current = ParseQuantity(m.Quantity)
	}
	if current == nil {
		return Medicine{}, ErrNoQuantity
	}

	next := math.Max(0, math.Round((*current-1)*100)/100)
	m.QuantityValue = &next
	m.Quantity = FormatQuantity(&next, m.QuantityUnit, m.Quantity)
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

// ParseQuantity extrae el primer número de un texto libre ("~10 pastillas" => 10).
func ParseQuantity(value string) *float64 {
	match := quantityRe.FindString(value)
	if match == "" {
		return nil
	}
	q, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &q
}

// FormatQuantity arma el texto mostrado; si no hay valor numérico conserva el fallback.
func FormatQuantity(value *float64, unit QuantityUnit, fallback string) string {
	if value == nil {
		return fallback
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", trimFloat(*value), unit))
}

var quantityRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func normalizeInput(in Input) (Input, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 2 {
		return Input{}, ErrInvalidInput
	}

	out := Input{
		Name:                name,
		Dosage:              strings.TrimSpace(in.Dosage),
		DosageForm:          strings.TrimSpace(in.DosageForm),
		Quantity:            strings.TrimSpace(in.Quantity),
		QuantityValue:       in.QuantityValue,
		Notes:               strings.TrimSpace(in.Notes),
		Barcode:             strings.TrimSpace(in.Barcode),
		IntakeTimes:         strings.TrimSpace(in.IntakeTimes),
		IntakeMemberUIDs:    in.IntakeMemberUIDs,
		IntakeMembersByTime: in.IntakeMembersByTime,
	}

	switch QuantityUnit(strings.TrimSpace(in.QuantityUnit)) {
	case UnitMl:
		out.QuantityUnit = string(UnitMl)
	case UnitG:
		out.QuantityUnit = string(UnitG)
	default:
		out.QuantityUnit = string(UnitPcs)
	}

	// fechas inválidas se descartan en silencio, igual que el resto del parseo laxo
	if in.ExpiresAt != nil && !in.ExpiresAt.IsZero() {
		t := *in.ExpiresAt
		out.ExpiresAt = &t
	}

	remind := defaultRemindDays
	if in.RemindDaysBefore != nil {
		remind = *in.RemindDaysBefore
		if remind < 0 {
			remind = 0
		}
		if remind > 365 {
			remind = 365
		}
	}
	out.RemindDaysBefore = &remind

	return out, nil
}

func applyInput(m *Medicine, in Input) {
	m.Name = in.Name
	m.Dosage = in.Dosage
	m.DosageForm = in.DosageForm
	m.Quantity = in.Quantity
	m.QuantityValue = in.QuantityValue
	m.QuantityUnit = QuantityUnit(in.QuantityUnit)
	m.Notes = in.Notes
	m.Barcode = in.Barcode
	m.ExpiresAt = in.ExpiresAt
	if in.RemindDaysBefore != nil {
		m.RemindDaysBefore = *in.RemindDaysBefore
	}
	m.IntakeTimes = in.IntakeTimes
	m.IntakeMemberUIDs = in.IntakeMemberUIDs
	m.IntakeMembersByTime = in.IntakeMembersByTime
}
