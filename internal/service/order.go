package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (entities.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error
	ListOrders(ctx context.Context) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	MarkEventPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	ListUnpublished(ctx context.Context, createdBefore time.Time, limit int) ([]entities.Order, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Generation() uint64
	SetIfGeneration(key string, value []byte, gen uint64) bool
	Delete(key string)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order entities.Order) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	publisher EventPublisher
	retry     utils.RetryConfig
	now       func() time.Time
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache, publisher EventPublisher) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		retry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxAttempts:  3,
			Multiplier:   2,
		},
		now: time.Now,
	}
}

// CreateOrder сохраняет заказ и только после коммита публикует OrderCreated.
// При ошибке публикации заказ остается сохраненным, возвращается ErrPublish.
func (s *orderService) CreateOrder(ctx context.Context, customer, product string, quantity int, totalValue decimal.Decimal) (entities.Order, error) {
	order, err := entities.NewOrder(customer, product, quantity, totalValue)
	if err != nil {
		return entities.Order{}, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.Info("order created", slog.String("order_id", order.ID.String()))

	if err := s.publish(ctx, order); err != nil {
		return order, err
	}
	order.EventPublished = true
	return order, nil
}

func (s *orderService) publish(ctx context.Context, order entities.Order) error {
	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		publishFailures.Inc()
		s.logger.Error("order left unpublished", slog.String("order_id", order.ID.String()), slog.Any("error", err))
		return err
	}

	if err := s.repo.MarkEventPublished(ctx, order.ID, s.now()); err != nil {
		// событие уже в брокере, повторная публикация безопасна: воркер идемпотентен
		s.logger.Warn("failed to mark order event published", slog.String("order_id", order.ID.String()), slog.Any("error", err))
	}
	return nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	key := id.String()
	if data, ok := s.cache.Get(key); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal order", slog.String("order_id", key), slog.Any("error", err))
			return entities.Order{}, err
		}
		return order, nil
	}

	// поколение берется до чтения: если статус сменят, пока идет запрос, в кеш ничего не попадет
	gen := s.cache.Generation()

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, id)
		return err
	}
	if err := utils.Retry(ctx, s.retry, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.putCache(order, gen)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus - ручная корректировка статуса в обход автомата. Проверяется только
// принадлежность статуса к набору.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (entities.Order, error) {
	if !status.IsValid() {
		return entities.Order{}, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, status)
	}

	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order.Status == status {
			return nil
		}
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	s.cache.Delete(id.String())
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.Info("order status corrected", slog.String("order_id", id.String()), slog.String("status", status.String()))
	return order, nil
}

func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	gen := s.cache.Generation()
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, order := range orders {
		s.putCache(order, gen)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

// RepublishPending повторно публикует события заказов, которые остались без события
// дольше olderThan. Возвращает число опубликованных.
func (s *orderService) RepublishPending(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	orders, err := s.repo.ListUnpublished(ctx, s.now().Add(-olderThan), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list unpublished orders: %w", err)
	}

	var (
		published int
		errs      []error
	)
	for _, order := range orders {
		if err := s.publish(ctx, order); err != nil {
			errs = append(errs, err)
			continue
		}
		s.cache.Delete(order.ID.String())
		published++
	}

	if published > 0 {
		s.logger.Info("order events republished", slog.Int("count", published))
	}
	return published, errors.Join(errs...)
}

func (s *orderService) putCache(order entities.Order, gen uint64) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID.String()), slog.Any("error", err))
		return
	}
	if !s.cache.SetIfGeneration(order.ID.String(), data, gen) {
		s.logger.Debug("order changed while loading, not cached", slog.String("order_id", order.ID.String()))
	}
}
