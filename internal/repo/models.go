package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id", "created_at", "status", "customer", "product",
	"quantity", "total_value", "event_published_at",
}

type Order struct {
	ID               uuid.UUID       `db:"id"`
	CreatedAt        time.Time       `db:"created_at"`
	Status           string          `db:"status"`
	Customer         string          `db:"customer"`
	Product          string          `db:"product"`
	Quantity         int             `db:"quantity"`
	TotalValue       decimal.Decimal `db:"total_value"`
	EventPublishedAt sql.NullTime    `db:"event_published_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:             o.ID,
		CreatedAt:      o.CreatedAt.UTC(),
		Status:         entities.Status(o.Status),
		Customer:       o.Customer,
		Product:        o.Product,
		Quantity:       o.Quantity,
		TotalValue:     o.TotalValue,
		EventPublished: o.EventPublishedAt.Valid,
	}
}

func OrdersToEntities(orders []Order) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result
}
