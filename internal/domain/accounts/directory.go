package accounts

import (
	"context"

	"home-aidkit/internal/domain/households"
)

// Directory adapta el servicio de cuentas a la interfaz que consume el
// módulo de hogares. Evita que households dependa de accounts.
type Directory struct {
	svc *Service
}

func NewDirectory(svc *Service) *Directory {
	return &Directory{svc: svc}
}

func (d *Directory) HouseholdOf(ctx context.Context, uid string) (string, error) {
	p, err := d.svc.GetByUID(ctx, uid)
	if err != nil {
		return "", err
	}
	return p.HouseholdID, nil
}

func (d *Directory) ListMembers(ctx context.Context, householdID string) ([]households.Member, error) {
	profiles, err := d.svc.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	members := make([]households.Member, 0, len(profiles))
	for _, p := range profiles {
		members = append(members, households.Member{
			UID:   p.UID,
			Name:  p.Name(),
			Email: p.Email,
		})
	}
	return members, nil
}

func (d *Directory) JoinHousehold(ctx context.Context, uid, householdID string) error {
	_, err := d.svc.AssignHousehold(ctx, uid, householdID)
	return err
}
