// Package tokens firma y verifica los tokens de sesión propios (HS256).
package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"home-aidkit/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    defaultTTL,
		now:    time.Now,
	}, nil
}

// Issue emite el token de sesión para register/login.
func (m *Manager) Issue(userID, email string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify implementa auth.AuthVerifier sobre nuestros propios tokens.
func (m *Manager) Verify(_ context.Context, tokenStr string) (auth.Claims, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return auth.Claims{UserID: sub, Email: email}, nil
}
