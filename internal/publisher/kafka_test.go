package publisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	err      error
	messages []kafka.Message
	calls    int
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishOrderCreated(t *testing.T) {
	order, err := entities.NewOrder("Ana", "Book", 2, decimal.RequireFromString("19.99"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		w := &fakeWriter{}
		p := newPublisher(logger, "orders", w)

		require.NoError(t, p.PublishOrderCreated(context.Background(), order))
		require.Len(t, w.messages, 1)

		got, err := events.Decode(w.messages[0])
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.OrderID)
		assert.Equal(t, events.TypeOrderCreated, got.MessageType)
	})

	t.Run("broker unavailable is not retried", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("dial tcp: connection refused")}
		p := newPublisher(logger, "orders", w)

		err := p.PublishOrderCreated(context.Background(), order)
		assert.ErrorIs(t, err, entities.ErrPublish)
		assert.Equal(t, 1, w.calls)
	})

	t.Run("close", func(t *testing.T) {
		w := &fakeWriter{}
		p := newPublisher(logger, "orders", w)
		require.NoError(t, p.Close())
		assert.True(t, w.closed)
	})
}
