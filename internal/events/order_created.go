// Package events описывает формат сообщений о заказах в брокере.
//
// Тело сообщения - JSON-снимок заказа на момент создания. Тип события и
// идентификатор заказа продублированы в заголовках для маршрутизации и логов.
package events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderCreated = "OrderCreated"

	HeaderMessageType   = "MessageType"
	HeaderOrderID       = "OrderId"
	HeaderDeliveryCount = "X-Delivery-Count"
)

// OrderCreated - снимок заказа. Для воркера это подсказка, а не источник истины:
// перед изменением заказ всегда перечитывается из хранилища.
type OrderCreated struct {
	MessageType string
	OrderID     uuid.UUID
	Snapshot    entities.Order
}

// Order - JSON-представление снимка в теле сообщения.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  time.Time       `json:"createdAt"`
	Status     string          `json:"status"`
	Customer   string          `json:"customer"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

func NewOrderCreated(order entities.Order) OrderCreated {
	return OrderCreated{
		MessageType: TypeOrderCreated,
		OrderID:     order.ID,
		Snapshot:    order,
	}
}

// Encode собирает сообщение для брокера. Ключ - id заказа, чтобы события одного
// заказа попадали в одну партицию.
func Encode(e OrderCreated) (kafka.Message, error) {
	body, err := json.Marshal(Order{
		ID:         e.Snapshot.ID,
		CreatedAt:  e.Snapshot.CreatedAt,
		Status:     e.Snapshot.Status.String(),
		Customer:   e.Snapshot.Customer,
		Product:    e.Snapshot.Product,
		Quantity:   e.Snapshot.Quantity,
		TotalValue: e.Snapshot.TotalValue,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	id := e.OrderID.String()
	return kafka.Message{
		Key:   []byte(id),
		Value: body,
		Headers: []kafka.Header{
			{Key: HeaderMessageType, Value: []byte(e.MessageType)},
			{Key: HeaderOrderID, Value: []byte(id)},
		},
	}, nil
}

// Decode разбирает сообщение. Любая ошибка оборачивает entities.ErrMalformedEvent.
func Decode(m kafka.Message) (OrderCreated, error) {
	var payload Order
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		return OrderCreated{}, fmt.Errorf("%w: %w", entities.ErrMalformedEvent, err)
	}

	messageType := TypeOrderCreated
	if v, ok := Header(m, HeaderMessageType); ok {
		messageType = v
	}
	if messageType != TypeOrderCreated {
		return OrderCreated{}, fmt.Errorf("%w: unexpected message type %q", entities.ErrMalformedEvent, messageType)
	}

	orderID := payload.ID
	if v, ok := Header(m, HeaderOrderID); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return OrderCreated{}, fmt.Errorf("%w: invalid order id header: %w", entities.ErrMalformedEvent, err)
		}
		orderID = id
	}
	if orderID == uuid.Nil {
		return OrderCreated{}, fmt.Errorf("%w: missing order id", entities.ErrMalformedEvent)
	}

	return OrderCreated{
		MessageType: messageType,
		OrderID:     orderID,
		Snapshot: entities.Order{
			ID:         payload.ID,
			CreatedAt:  payload.CreatedAt,
			Status:     entities.Status(payload.Status),
			Customer:   payload.Customer,
			Product:    payload.Product,
			Quantity:   payload.Quantity,
			TotalValue: payload.TotalValue,
		},
	}, nil
}

func Header(m kafka.Message, key string) (string, bool) {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}

// DeliveryCount возвращает номер доставки сообщения, первая доставка - 1.
func DeliveryCount(m kafka.Message) int {
	v, ok := Header(m, HeaderDeliveryCount)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// WithDeliveryCount возвращает копию сообщения для повторной отправки в топик.
func WithDeliveryCount(m kafka.Message, count int) kafka.Message {
	headers := make([]kafka.Header, 0, len(m.Headers)+1)
	for _, h := range m.Headers {
		if h.Key != HeaderDeliveryCount {
			headers = append(headers, h)
		}
	}
	headers = append(headers, kafka.Header{Key: HeaderDeliveryCount, Value: []byte(strconv.Itoa(count))})

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	}
}
