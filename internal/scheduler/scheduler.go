// Package scheduler dispara la pasada diaria de recordatorios a la hora
// local configurada.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"home-aidkit/internal/notify"
	"home-aidkit/internal/platform/logger"

	"github.com/go-co-op/gocron"
)

type Scheduler struct {
	cron *gocron.Scheduler
	log  logger.Logger
}

// Start agenda la corrida diaria en hora local ("09:00") y arranca en
// background. Stop() espera la corrida en curso.
func Start(notifySvc *notify.Service, at string, log logger.Logger) (*Scheduler, error) {
	cron := gocron.NewScheduler(time.Local)

	_, err := cron.Every(1).Day().At(at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := notifySvc.Run(ctx); err != nil {
			log.Error("scheduled reminder run failed", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminder job at %q: %w", at, err)
	}

	cron.StartAsync()
	log.Info("reminder scheduler started", map[string]any{"at": at})

	return &Scheduler{cron: cron, log: log}, nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
