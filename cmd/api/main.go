package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home-aidkit/internal/adapters/auth/tokens"
	"home-aidkit/internal/adapters/push/expo"
	"home-aidkit/internal/adapters/storage/badgerkv"
	pg "home-aidkit/internal/adapters/storage/postgres"
	"home-aidkit/internal/notify"
	"home-aidkit/internal/platform/config"
	"home-aidkit/internal/platform/logger"
	"home-aidkit/internal/router"
	"home-aidkit/internal/scheduler"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	opts := router.Options{CORSOrigins: cfg.CORSOrigins}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	}

	if cfg.BadgerPath != "" {
		store, err := badgerkv.Open(cfg.BadgerPath)
		if err != nil {
			log.Error("badger unavailable", map[string]any{"error": err.Error(), "path": cfg.BadgerPath})
			os.Exit(1)
		}
		defer store.Close()
		opts.KV = store
	}

	if cfg.JWTSecret != "" {
		mgr, err := tokens.NewManager(cfg.JWTSecret)
		if err != nil {
			log.Error("token manager init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = mgr
		opts.TokenIssuer = mgr
	} else {
		log.Warn("JWT_SECRET not set, running in dev mode (X-Debug-User-ID)", nil)
	}

	handler, deps := router.Build(opts)

	if cfg.PushGatewayURL != "" {
		notifySvc := notify.NewService(
			deps.Households,
			deps.Medicines,
			deps.Accounts,
			expo.NewSender(cfg.PushGatewayURL),
			log,
		)
		sched, err := scheduler.Start(notifySvc, cfg.ReminderAt, log)
		if err != nil {
			log.Error("reminder scheduler init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}
