package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/config"

	"github.com/robfig/cron/v3"
)

type Republisher interface {
	RepublishPending(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}

// RepublishJob по расписанию досылает OrderCreated для заказов, чье событие
// не дошло до брокера.
type RepublishJob struct {
	svc    Republisher
	cron   *cron.Cron
	logger *slog.Logger
	cfg    config.Republish
}

func NewRepublishJob(logger *slog.Logger, cfg config.Republish, svc Republisher) *RepublishJob {
	logger = logger.With(slog.String("job", "republish"))
	return &RepublishJob{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
	}
}

// Start регистрирует задачу и запускает планировщик. ctx передается в каждый запуск.
func (j *RepublishJob) Start(ctx context.Context) error {
	if !j.cfg.Enabled {
		j.logger.InfoContext(ctx, "republish job disabled")
		return nil
	}

	if _, err := j.cron.AddFunc(j.cfg.Schedule, func() { j.Run(ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "republish job started", slog.String("schedule", j.cfg.Schedule))
	return nil
}

func (j *RepublishJob) Run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n, err := j.svc.RepublishPending(ctx, j.cfg.GracePeriod, j.cfg.BatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "republish job failed", slog.Int("republished", n), slog.Any("error", err))
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "republish job finished", slog.Int("republished", n))
	}
}

// Stop останавливает планировщик и ждет текущий запуск.
func (j *RepublishJob) Stop() error {
	<-j.cron.Stop().Done()
	j.logger.Info("republish job stopped")
	return nil
}
