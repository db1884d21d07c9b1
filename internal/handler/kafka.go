package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/config"
	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/utils"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

type OrderProcessor interface {
	ProcessOrderCreated(ctx context.Context, event events.OrderCreated) error
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	// пауза после ошибки чтения не меньше этой, даже если WORKER_RETRY_BACKOFF=0
	minFetchBackoff = time.Second
	maxWriteBackoff = 30 * time.Second
)

type kafkaHandler struct {
	reader    MessageReader
	writer    MessageWriter
	logger    *slog.Logger
	processor OrderProcessor

	topic         string
	dlqTopic      string
	concurrency   int
	maxDeliveries int
	backoff       utils.RetryConfig
	writeRetry    utils.RetryConfig
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, worker config.Worker, processor OrderProcessor) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
		MaxWait: cfg.ReaderMaxWait,
	})
	// топик задается в каждом сообщении: повтор идет в основной топик, остальное в DLQ
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaHandler(logger, reader, writer, processor, cfg, worker)
}

func newKafkaHandler(logger *slog.Logger, reader MessageReader, writer MessageWriter, processor OrderProcessor, cfg config.Kafka, worker config.Worker) *kafkaHandler {
	writeMaxDelay := worker.MaxBackoff
	if writeMaxDelay <= 0 {
		writeMaxDelay = maxWriteBackoff
	}

	return &kafkaHandler{
		logger:        logger.With(slog.String("handler", "kafka")),
		reader:        reader,
		writer:        writer,
		processor:     processor,
		topic:         cfg.Topic,
		dlqTopic:      cfg.DLQTopic,
		concurrency:   max(worker.Concurrency, 1),
		maxDeliveries: max(worker.MaxDeliveries, 1),
		backoff: utils.RetryConfig{
			InitialDelay: worker.RetryBackoff,
			MaxDelay:     worker.MaxBackoff,
			Multiplier:   2,
		},
		// запись повтора или в DLQ не ограничена по попыткам, ее прерывает только ctx
		writeRetry: utils.RetryConfig{
			MaxAttempts:  math.MaxInt,
			InitialDelay: worker.RetryBackoff,
			MaxDelay:     writeMaxDelay,
			Multiplier:   2,
		},
	}
}

// Consume читает сообщения до отмены ctx. Перед возвратом дожидается обработчиков,
// которые уже запущены.
func (h *kafkaHandler) Consume(ctx context.Context) {
	g := new(errgroup.Group)
	g.SetLimit(h.concurrency)

	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			if err := utils.Sleep(ctx, max(h.backoff.InitialDelay, minFetchBackoff)); err != nil {
				break
			}
			continue
		}

		g.Go(func() error {
			h.handleMessage(ctx, m)
			return nil
		})
	}

	g.Wait()
	h.logger.Info("consumer stopped")
}

func (h *kafkaHandler) handleMessage(ctx context.Context, m kafka.Message) {
	ordersInProgress.Inc()
	defer ordersInProgress.Dec()

	logger := h.logger.With(
		slog.Int("partition", m.Partition),
		slog.Int64("offset", m.Offset),
		slog.Int("delivery", events.DeliveryCount(m)),
	)

	event, err := events.Decode(m)
	if err != nil {
		logger.Warn("dropping malformed message", slog.Any("error", err))
		ordersDropped.WithLabelValues("malformed").Inc()
		h.commit(ctx, m)
		return
	}
	logger = logger.With(slog.String("order_id", event.OrderID.String()))

	start := time.Now()
	err = h.processor.ProcessOrderCreated(ctx, event)
	switch {
	case err == nil:
		ordersProcessed.Inc()
		orderProcessingDuration.Observe(time.Since(start).Seconds())

	case ctx.Err() != nil:
		// остановка посреди обработки: сообщение придет снова
		logger.Info("processing interrupted, leaving message uncommitted", slog.Any("error", err))
		return

	case errors.Is(err, entities.ErrOrderNotFound):
		logger.Warn("order not found, dropping event")
		ordersDropped.WithLabelValues("not_found").Inc()

	case errors.Is(err, entities.ErrTransitionNotAllowed):
		logger.Warn("order status changed externally, dropping event", slog.Any("error", err))
		ordersDropped.WithLabelValues("transition_not_allowed").Inc()

	default:
		ordersFailed.Inc()
		logger.Error("failed to process order", slog.Any("error", err))
		if err := h.redeliver(ctx, logger, m); err != nil {
			logger.Error("failed to redeliver message, leaving uncommitted", slog.Any("error", err))
			return
		}
	}

	h.commit(ctx, m)
}

// redeliver ставит сообщение в очередь заново со следующим номером доставки,
// а исчерпавшее лимит отправляет в DLQ. Пока запись не прошла, обработчик держит слот:
// коммит следующего offset партиции подтвердил бы и это сообщение.
func (h *kafkaHandler) redeliver(ctx context.Context, logger *slog.Logger, m kafka.Message) error {
	delivery := events.DeliveryCount(m)

	if delivery >= h.maxDeliveries {
		dead := events.WithDeliveryCount(m, delivery)
		dead.Topic = h.dlqTopic
		if err := h.write(ctx, logger, dead); err != nil {
			return fmt.Errorf("failed to write message to DLQ: %w", err)
		}
		ordersDLQ.Inc()
		logger.Warn("message moved to DLQ", slog.String("topic", h.dlqTopic))
		return nil
	}

	if err := utils.Sleep(ctx, utils.Backoff(h.backoff, delivery+1)); err != nil {
		return err
	}

	next := events.WithDeliveryCount(m, delivery+1)
	next.Topic = h.topic
	if err := h.write(ctx, logger, next); err != nil {
		return fmt.Errorf("failed to requeue message: %w", err)
	}
	ordersRequeued.Inc()
	logger.Info("message requeued", slog.Int("next_delivery", delivery+1))
	return nil
}

// write повторяет запись, пока она не пройдет или не отменится ctx.
func (h *kafkaHandler) write(ctx context.Context, logger *slog.Logger, m kafka.Message) error {
	attempt := 0
	return utils.Retry(ctx, h.writeRetry, func() error {
		attempt++
		err := h.writer.WriteMessages(ctx, m)
		if err != nil {
			writeErrors.Inc()
			logger.Warn("failed to write message, retrying",
				slog.String("topic", m.Topic),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
		}
		return err
	})
}

// commit не зависит от отмены ctx: завершенная работа фиксируется и при остановке.
func (h *kafkaHandler) commit(ctx context.Context, m kafka.Message) {
	if err := h.reader.CommitMessages(context.WithoutCancel(ctx), m); err != nil {
		commitErrors.Inc()
		h.logger.Error("failed to commit message", slog.Any("error", err))
	}
}

func (h *kafkaHandler) Close() error {
	return errors.Join(h.reader.Close(), h.writer.Close())
}
