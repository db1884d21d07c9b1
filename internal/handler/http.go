package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, customer, product string, quantity int, totalValue decimal.Decimal) (entities.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrderByID)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}

// CreateOrder создает заказ и публикует событие OrderCreated.
// @Summary      Создать заказ
// @Description  Сохраняет заказ в статусе Pending и отправляет событие на обработку
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      CreateOrderRequest  true  "Заказ"
// @Success      201    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500    {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, req.Customer, req.Product, req.Quantity, *req.TotalValue)
	switch {
	case errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, entities.ErrPublish):
		// заказ сохранен, событие догонит джоба повторной публикации
		w.Header().Set("Location", "/orders/"+order.ID.String())
		utils.WriteError(w, "order saved but not queued for processing", http.StatusInternalServerError)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/orders/"+order.ID.String())
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// ListOrders возвращает все заказы, новые первыми.
// @Summary      Список заказов
// @Tags         orders
// @Produce      json
// @Success      200  {array}   Order
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ по ID
// @Description  Возвращает информацию о заказе по его уникальному идентификатору
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Идентификатор заказа (UUID)"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderRequestsInProgress.Inc()
	defer orderRequestsInProgress.Dec()
	start := time.Now()
	defer func() {
		orderRequestDuration.Observe(time.Since(start).Seconds())
	}()

	id, ok := h.orderID(w, r)
	if !ok {
		orderRequestTotal.WithLabelValues("bad_request").Inc()
		return
	}

	order, err := h.svc.GetOrderByID(ctx, id)
	if errors.Is(err, entities.ErrOrderNotFound) {
		orderRequestTotal.WithLabelValues("not_found").Inc()
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		orderRequestTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", id.String()))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	orderRequestTotal.WithLabelValues("ok").Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateStatus выставляет статус вручную, минуя автомат статусов.
// @Summary      Сменить статус заказа
// @Description  Ручная корректировка. Допустимы только Pending, Processing и Completed
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Идентификатор заказа (UUID)"
// @Param        status  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200     {object}  Order
// @Failure      400     {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404     {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500     {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	status, err := entities.ParseStatus(req.Status)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.svc.UpdateStatus(ctx, id, status)
	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrInvalidStatus):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update order status", slog.Any("error", err), slog.String("order_id", id.String()))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if err := h.validate.Var(raw, "required,uuid"); err != nil {
		utils.WriteValidationError(w, err)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
