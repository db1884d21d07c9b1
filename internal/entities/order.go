package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Status     Status
	Customer   string
	Product    string
	Quantity   int
	TotalValue decimal.Decimal

	// false пока событие OrderCreated не ушло в брокер
	EventPublished bool
}

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrPublish              = errors.New("failed to publish order event")
	ErrMalformedEvent       = errors.New("malformed order event")
)

// NewOrder создает заказ в статусе Pending с новым идентификатором.
func NewOrder(customer, product string, quantity int, totalValue decimal.Decimal) (Order, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Order{}, fmt.Errorf("failed to generate order id: %w", err)
	}

	order := Order{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Status:     StatusPending,
		Customer:   strings.TrimSpace(customer),
		Product:    strings.TrimSpace(product),
		Quantity:   quantity,
		TotalValue: totalValue,
	}

	if err := order.Validate(); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (o Order) Validate() error {
	switch {
	case o.Customer == "":
		return fmt.Errorf("%w: customer is required", ErrInvalidOrder)
	case o.Product == "":
		return fmt.Errorf("%w: product is required", ErrInvalidOrder)
	case o.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be greater than 0, got %d", ErrInvalidOrder, o.Quantity)
	case o.Quantity > math.MaxInt32:
		return fmt.Errorf("%w: quantity must not exceed %d, got %d", ErrInvalidOrder, math.MaxInt32, o.Quantity)
	case o.TotalValue.IsNegative():
		return fmt.Errorf("%w: total value must not be negative, got %s", ErrInvalidOrder, o.TotalValue)
	case !o.Status.IsValid():
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	return nil
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	return nil
}

func init() {
	gob.Register(Order{})

	// Фронтенд ожидает totalValue числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}
