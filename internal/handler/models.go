package handler

import (
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/shopspring/decimal"
)

// Order представляет заказ
type Order struct {
	ID             string          `json:"id" example:"0192f0c4-5b7e-7c2a-9d3e-0a1b2c3d4e5f"`
	CreatedAt      time.Time       `json:"createdAt"`
	Status         string          `json:"status" enums:"Pending,Processing,Completed"`
	Customer       string          `json:"customer"`
	Product        string          `json:"product"`
	Quantity       int             `json:"quantity"`
	TotalValue     decimal.Decimal `json:"totalValue" swaggertype:"number"`
	EventPublished bool            `json:"eventPublished"`
}

// CreateOrderRequest тело запроса на создание заказа
type CreateOrderRequest struct {
	Customer   string           `json:"customer" validate:"required"`
	Product    string           `json:"product" validate:"required"`
	Quantity   int              `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	TotalValue *decimal.Decimal `json:"totalValue" validate:"required" swaggertype:"number"`
}

// UpdateStatusRequest тело запроса на ручную смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Processing Completed" enums:"Pending,Processing,Completed"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID:             o.ID.String(),
		CreatedAt:      o.CreatedAt,
		Status:         o.Status.String(),
		Customer:       o.Customer,
		Product:        o.Product,
		Quantity:       o.Quantity,
		TotalValue:     o.TotalValue,
		EventPublished: o.EventPublished,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	return res
}
