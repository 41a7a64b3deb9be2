package accounts

import "time"

// UserProfile es el perfil de un usuario registrado.
// HouseholdID vacío significa que todavía no pertenece a ningún hogar.
type UserProfile struct {
	UID         string
	Email       string
	DisplayName string
	HouseholdID string

	// Token Expo para recordatorios push; opcional.
	PushToken string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name devuelve el nombre a mostrar, con fallback a email y uid.
func (p UserProfile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	return p.UID
}
