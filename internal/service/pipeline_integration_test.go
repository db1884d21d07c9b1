//go:build integration

package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/SergeyBogomolovv/order-pipeline/internal/postgres"
	"github.com/SergeyBogomolovv/order-pipeline/internal/repo"
	"github.com/SergeyBogomolovv/order-pipeline/internal/service"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/cache"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// queuePublisher кладет закодированные события в канал вместо брокера.
type queuePublisher struct {
	queue chan kafka.Message
}

func (p *queuePublisher) PublishOrderCreated(_ context.Context, order entities.Order) error {
	m, err := events.Encode(events.NewOrderCreated(order))
	if err != nil {
		return err
	}
	p.queue <- m
	return nil
}

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("orders"),
		tcpostgres.WithUsername("orders"),
		tcpostgres.WithPassword("orders"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db))
	return db
}

func TestPipeline_CreateThenProcess(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	lru := cache.NewLRUCache(100, time.Minute)
	pub := &queuePublisher{queue: make(chan kafka.Message, 1)}

	svc := service.NewOrderService(testLogger, txManager, orderRepo, lru, pub)
	processor := service.NewOrderProcessor(testLogger, txManager, orderRepo, lru, 200*time.Millisecond)

	created, err := svc.CreateOrder(ctx, "Ana", "Book", 2, decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.True(t, created.EventPublished)

	got, err := svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, got.Status)

	event, err := events.Decode(<-pub.queue)
	require.NoError(t, err)
	assert.Equal(t, created.ID, event.OrderID)
	assert.True(t, event.Snapshot.TotalValue.Equal(decimal.RequireFromString("19.99")))

	require.NoError(t, processor.ProcessOrderCreated(ctx, event))

	got, err = svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, got.Status)

	// повторная доставка ничего не меняет
	require.NoError(t, processor.ProcessOrderCreated(ctx, event))
	got, err = svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, got.Status)
}

func TestPipeline_ConcurrentRedelivery(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	lru := cache.NewLRUCache(100, time.Minute)
	pub := &queuePublisher{queue: make(chan kafka.Message, 1)}

	svc := service.NewOrderService(testLogger, txManager, orderRepo, lru, pub)
	processor := service.NewOrderProcessor(testLogger, txManager, orderRepo, lru, 50*time.Millisecond)

	created, err := svc.CreateOrder(ctx, "Ana", "Book", 1, decimal.NewFromInt(10))
	require.NoError(t, err)
	event, err := events.Decode(<-pub.queue)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Go(func() {
			errs[i] = processor.ProcessOrderCreated(ctx, event)
		})
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	got, err := orderRepo.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, got.Status)
}
