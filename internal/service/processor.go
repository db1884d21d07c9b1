package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/utils"
	"github.com/google/uuid"
)

type orderProcessor struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	delay     time.Duration
}

// NewOrderProcessor проводит заказ по автомату Pending -> Processing -> Completed.
// Кеш используется только для инвалидации, заказ всегда читается из базы.
func NewOrderProcessor(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache, delay time.Duration) *orderProcessor {
	return &orderProcessor{
		logger:    logger.With(slog.String("service", "processor")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		delay:     delay,
	}
}

// ProcessOrderCreated безопасно вызывать повторно для одного и того же события.
// ErrOrderNotFound и ErrTransitionNotAllowed означают, что событие надо отбросить,
// остальные ошибки - повторить доставку.
func (p *orderProcessor) ProcessOrderCreated(ctx context.Context, event events.OrderCreated) error {
	logger := p.logger.With(slog.String("order_id", event.OrderID.String()))

	order, err := p.repo.GetOrderByID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, entities.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.Status == entities.StatusCompleted {
		logger.Info("order already completed, skipping")
		return nil
	}

	if err := p.advance(ctx, event.OrderID, entities.StartProcessing); err != nil {
		return err
	}

	logger.Debug("processing order", slog.Duration("delay", p.delay))
	if err := utils.Sleep(ctx, p.delay); err != nil {
		return fmt.Errorf("order processing interrupted: %w", err)
	}

	return p.advance(ctx, event.OrderID, entities.CompleteProcessing)
}

// advance применяет переход в отдельной транзакции с блокировкой строки.
func (p *orderProcessor) advance(ctx context.Context, id uuid.UUID, t entities.Transition) error {
	var (
		from, to entities.Status
		changed  bool
	)

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := p.repo.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}

		from = order.Status
		to, changed, err = t.Apply(order.Status)
		if err != nil || !changed {
			return err
		}
		return p.repo.UpdateStatus(ctx, id, to)
	})
	if err != nil {
		if errors.Is(err, entities.ErrOrderNotFound) || errors.Is(err, entities.ErrTransitionNotAllowed) {
			return err
		}
		return fmt.Errorf("failed to apply %s: %w", t, err)
	}

	logger := p.logger.With(slog.String("order_id", id.String()))
	if !changed {
		logger.Info("transition already applied", slog.String("transition", t.String()), slog.String("status", from.String()))
		return nil
	}

	p.cache.Delete(id.String())
	logger.Info("order status changed", slog.String("from", from.String()), slog.String("to", to.String()))
	return nil
}
