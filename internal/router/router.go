package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "home-aidkit/internal/adapters/storage/memory"
	pg "home-aidkit/internal/adapters/storage/postgres"
	"home-aidkit/internal/domain/accounts"
	"home-aidkit/internal/domain/advisor"
	"home-aidkit/internal/domain/chat"
	"home-aidkit/internal/domain/doseplan"
	"home-aidkit/internal/domain/emergency"
	"home-aidkit/internal/domain/households"
	"home-aidkit/internal/domain/intakes"
	"home-aidkit/internal/domain/medicines"
	"home-aidkit/internal/domain/shopping"
	"home-aidkit/internal/domain/widgetfeed"
	"home-aidkit/internal/middleware"
	"home-aidkit/internal/platform/metrics"
	"home-aidkit/internal/ports/auth"
	"home-aidkit/internal/ports/kv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: respaldo del tracker de tomas. Si no viene, in-memory.
	KV kv.Store

	// Opcional: emisor de tokens para register/login. Nil en modo dev.
	TokenIssuer accounts.TokenIssuer

	CORSOrigins []string
}

// Deps expone los servicios ya cableados; el job de recordatorios los
// comparte con el router en vez de armar los suyos.
type Deps struct {
	Accounts   *accounts.Service
	Households *households.Service
	Medicines  *medicines.Service
}

func NewRouter(opts Options) http.Handler {
	h, _ := Build(opts)
	return h
}

func Build(opts Options) (http.Handler, Deps) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Debug-User-ID"},
	}).Handler)

	r.Use(metrics.Middleware)
	r.Use(middleware.NewRateLimiter(20, 40).Handler)
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	var (
		accountsRepo   accounts.Repository
		householdsRepo households.Repository
		medicinesRepo  medicines.Repository
		intakesRepo    intakes.Repository
		shoppingRepo   shopping.Repository
		chatRepo       chat.Repository
		emergencyRepo  emergency.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		accountsRepo = pg.NewAccountsRepo(db)
		householdsRepo = pg.NewHouseholdsRepo(db)
		medicinesRepo = pg.NewMedicinesRepo(db)
		intakesRepo = pg.NewIntakesRepo(db)
		shoppingRepo = pg.NewShoppingRepo(db)
		chatRepo = pg.NewChatRepo(db)
		emergencyRepo = pg.NewEmergencyRepo(db)
	} else {
		accountsRepo = mem.NewAccountsRepo()
		householdsRepo = mem.NewHouseholdsRepo()
		medicinesRepo = mem.NewMedicinesRepo()
		intakesRepo = mem.NewIntakesRepo()
		shoppingRepo = mem.NewShoppingRepo()
		chatRepo = mem.NewChatRepo()
		emergencyRepo = mem.NewEmergencyRepo()
	}

	store := opts.KV
	if store == nil {
		store = mem.NewKVStore()
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountsRepo)
	householdsSvc := households.NewService(householdsRepo)
	medicinesSvc := medicines.NewService(medicinesRepo)
	intakesSvc := intakes.NewService(intakesRepo)
	shoppingSvc := shopping.NewService(shoppingRepo)
	chatSvc := chat.NewService(chatRepo)
	emergencySvc := emergency.NewService(emergencyRepo)
	tracker := doseplan.NewTracker(store)

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, householdsSvc, opts.TokenIssuer)
	households.RegisterRoutes(r, householdsSvc, accounts.NewDirectory(accountsSvc))
	medicines.RegisterRoutes(r, medicinesSvc, accountsSvc, intakesSvc, doseplan.NewUseGuard(tracker))
	intakes.RegisterRoutes(r, intakesSvc, accountsSvc)
	shopping.RegisterRoutes(r, shoppingSvc, accountsSvc)
	chat.RegisterRoutes(r, chatSvc, accountsSvc)
	emergency.RegisterRoutes(r, emergencySvc, accountsSvc)
	doseplan.RegisterRoutes(r, tracker, medicinesSvc, accountsSvc)
	advisor.RegisterRoutes(r, medicinesSvc, accountsSvc)
	widgetfeed.RegisterRoutes(r, tracker, medicinesSvc, shoppingSvc, accountsSvc)

	return r, Deps{
		Accounts:   accountsSvc,
		Households: householdsSvc,
		Medicines:  medicinesSvc,
	}
}
