package events_test

import (
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) entities.Order {
	t.Helper()
	order, err := entities.NewOrder("Ana", "Book", 2, decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	return order
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	order := newOrder(t)

	msg, err := events.Encode(events.NewOrderCreated(order))
	require.NoError(t, err)

	assert.Equal(t, []byte(order.ID.String()), msg.Key)
	messageType, ok := events.Header(msg, events.HeaderMessageType)
	require.True(t, ok)
	assert.Equal(t, events.TypeOrderCreated, messageType)
	orderID, ok := events.Header(msg, events.HeaderOrderID)
	require.True(t, ok)
	assert.Equal(t, order.ID.String(), orderID)

	got, err := events.Decode(msg)
	require.NoError(t, err)

	assert.Equal(t, events.TypeOrderCreated, got.MessageType)
	assert.Equal(t, order.ID, got.OrderID)
	assert.Equal(t, order.ID, got.Snapshot.ID)
	assert.True(t, order.CreatedAt.Equal(got.Snapshot.CreatedAt))
	assert.Equal(t, order.Status, got.Snapshot.Status)
	assert.Equal(t, order.Customer, got.Snapshot.Customer)
	assert.Equal(t, order.Product, got.Snapshot.Product)
	assert.Equal(t, order.Quantity, got.Snapshot.Quantity)
	assert.True(t, order.TotalValue.Equal(got.Snapshot.TotalValue))
}

func TestEncode_TotalValueIsNumber(t *testing.T) {
	order := newOrder(t)

	msg, err := events.Encode(events.NewOrderCreated(order))
	require.NoError(t, err)

	assert.Contains(t, string(msg.Value), `"totalValue":19.99`)
	assert.Contains(t, string(msg.Value), `"status":"Pending"`)
}

func TestDecode_Malformed(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name string
		msg  kafka.Message
	}{
		{
			name: "not json",
			msg:  kafka.Message{Value: []byte("{broken")},
		},
		{
			name: "missing order id",
			msg:  kafka.Message{Value: []byte(`{"customer":"Ana"}`)},
		},
		{
			name: "invalid id header",
			msg: kafka.Message{
				Value:   []byte(`{"customer":"Ana"}`),
				Headers: []kafka.Header{{Key: events.HeaderOrderID, Value: []byte("nope")}},
			},
		},
		{
			name: "unexpected message type",
			msg: kafka.Message{
				Value:   []byte(`{"id":"` + id.String() + `"}`),
				Headers: []kafka.Header{{Key: events.HeaderMessageType, Value: []byte("OrderDeleted")}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := events.Decode(tc.msg)
			assert.ErrorIs(t, err, entities.ErrMalformedEvent)
		})
	}
}

func TestDecode_OrderIDFromHeader(t *testing.T) {
	id := uuid.New()
	msg := kafka.Message{
		Value:   []byte(`{"customer":"Ana","createdAt":"` + time.Now().UTC().Format(time.RFC3339) + `"}`),
		Headers: []kafka.Header{{Key: events.HeaderOrderID, Value: []byte(id.String())}},
	}

	got, err := events.Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, id, got.OrderID)
}

func TestDeliveryCount(t *testing.T) {
	msg := kafka.Message{Key: []byte("k"), Value: []byte("v")}
	assert.Equal(t, 1, events.DeliveryCount(msg))

	next := events.WithDeliveryCount(msg, 2)
	assert.Equal(t, 2, events.DeliveryCount(next))
	assert.Equal(t, msg.Key, next.Key)
	assert.Equal(t, msg.Value, next.Value)

	again := events.WithDeliveryCount(next, 3)
	assert.Equal(t, 3, events.DeliveryCount(again))
	assert.Len(t, again.Headers, 1)

	broken := kafka.Message{Headers: []kafka.Header{{Key: events.HeaderDeliveryCount, Value: []byte("x")}}}
	assert.Equal(t, 1, events.DeliveryCount(broken))
}
