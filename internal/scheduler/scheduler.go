// Package scheduler периодически обновляет кэш значений фильтров.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/goroutine"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// Refresher пересчитывает значения фильтров.
type Refresher interface {
	RefreshFilterOptions(ctx context.Context) (models.FilterOptions, error)
}

// Scheduler обёртка над robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	timeout   time.Duration
	log       logrus.FieldLogger
}

// New создаёт планировщик с cron выражением spec, например "@every 10m".
func New(refresher Refresher, spec string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
		timeout:   30 * time.Second,
		log:       logger.Get(),
	}
}

// Start регистрирует задачу, запускает cron и сразу прогревает кэш.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runRefresh(ctx) }); err != nil {
		return fmt.Errorf("scheduler: некорректное расписание %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("scheduler: запущен")

	goroutine.SafeGoWithContext(ctx, "scheduler-warmup", s.runRefresh)
	return nil
}

// Stop останавливает cron и ждёт завершения текущей задачи.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler: остановлен")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	opts, err := s.refresher.RefreshFilterOptions(ctx)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("scheduler: не удалось обновить значения фильтров")
		return
	}
	s.log.WithFields(logrus.Fields{
		"skills":    len(opts.Skills),
		"locations": len(opts.Locations),
		"companies": len(opts.Companies),
		"took":      time.Since(started).String(),
	}).Info("scheduler: значения фильтров обновлены")
}
