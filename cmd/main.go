package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/order-pipeline/docs"
	"github.com/SergeyBogomolovv/order-pipeline/internal/app"
	"github.com/SergeyBogomolovv/order-pipeline/internal/config"
	"github.com/SergeyBogomolovv/order-pipeline/internal/handler"
	"github.com/SergeyBogomolovv/order-pipeline/internal/jobs"
	"github.com/SergeyBogomolovv/order-pipeline/internal/postgres"
	"github.com/SergeyBogomolovv/order-pipeline/internal/publisher"
	"github.com/SergeyBogomolovv/order-pipeline/internal/repo"
	"github.com/SergeyBogomolovv/order-pipeline/internal/service"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/cache"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Order Pipeline API
// @version         1.0
// @description     Заказы и их асинхронная обработка
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to migrate db", postgres.Migrate(ctx, db))

	handler.RegisterMetrics()
	service.RegisterMetrics()

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	cache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	eventPublisher := publisher.NewKafkaPublisher(logger, conf.Kafka)
	defer eventPublisher.Close()

	orderService := service.NewOrderService(logger, txManager, orderRepo, cache, eventPublisher)
	orderProcessor := service.NewOrderProcessor(logger, txManager, orderRepo, cache, conf.Worker.ProcessingDelay)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, conf.Worker, orderProcessor)
	httpHandler := handler.NewHTTPHandler(logger, orderService)
	republishJob := jobs.NewRepublishJob(logger, conf.Republish, orderService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(cache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity}, republishJob)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
