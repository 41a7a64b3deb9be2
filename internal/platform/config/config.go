package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del servicio, cargada desde env.
type Config struct {
	Port string

	// Postgres. Vacío => repos en memoria (modo dev).
	DBDSN string

	// Secreto HS256 para tokens de sesión. Vacío => solo modo dev
	// (X-Debug-User-ID), no se emiten tokens.
	JWTSecret string

	// Directorio de BadgerDB para el dose tracker. Vacío => KV en memoria.
	BadgerPath string

	// Gateway de push (Expo). Vacío => recordatorios deshabilitados.
	PushGatewayURL string

	// Hora local "HH:MM" a la que corre el job de recordatorios de vencimiento.
	ReminderAt string

	CORSOrigins []string
}

// Load lee .env si existe y después las variables de entorno.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		DBDSN:          os.Getenv("DB_DSN"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		BadgerPath:     os.Getenv("BADGER_PATH"),
		PushGatewayURL: os.Getenv("PUSH_GATEWAY_URL"),
		ReminderAt:     getEnv("REMINDER_AT", "09:00"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
