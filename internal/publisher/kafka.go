package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/order-pipeline/internal/config"
	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer MessageWriter
	topic  string
}

// NewKafkaPublisher отправляет OrderCreated в топик заказов. Повторов внутри нет:
// ошибка сразу уходит вызывающему.
func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return newPublisher(logger, cfg.Topic, &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            1,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(logger *slog.Logger, topic string, writer MessageWriter) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: writer,
		topic:  topic,
	}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, order entities.Order) error {
	msg, err := events.Encode(events.NewOrderCreated(order))
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPublish, err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPublish, err)
	}

	p.logger.Debug("order event published",
		slog.String("order_id", order.ID.String()),
		slog.String("topic", p.topic),
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
