package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"
	"github.com/google/uuid"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

// NewPostgresRepo - хранилище заказов. Каждый вызов идет либо в транзакции из
// контекста, либо отдельным запросом к пулу.
func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("id", "created_at", "status", "customer", "product", "quantity", "total_value").
		Values(o.ID, o.CreatedAt, o.Status.String(), o.Customer, o.Product, o.Quantity, o.TotalValue).
		MustSql()

	if _, err := trm.QuerierFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	return r.getOrder(ctx, query, args...)
}

// GetOrderForUpdate блокирует строку до конца транзакции из контекста.
func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		MustSql()

	return r.getOrder(ctx, query, args...)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) error {
	query, args := r.qb.Update("orders").
		Set("status", status.String()).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := trm.QuerierFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return expectAffected(res)
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		MustSql()

	return r.selectOrders(ctx, query, args...)
}

func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	return r.selectOrders(ctx, query, args...)
}

func (r *postgresRepo) MarkEventPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args := r.qb.Update("orders").
		Set("event_published_at", at).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := trm.QuerierFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark order event published: %w", err)
	}
	return expectAffected(res)
}

// ListUnpublished возвращает Pending-заказы, событие которых так и не ушло в брокер.
func (r *postgresRepo) ListUnpublished(ctx context.Context, createdBefore time.Time, limit int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"event_published_at": nil, "status": entities.StatusPending.String()}).
		Where(sq.Lt{"created_at": createdBefore}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		MustSql()

	return r.selectOrders(ctx, query, args...)
}

func (r *postgresRepo) getOrder(ctx context.Context, query string, args ...any) (entities.Order, error) {
	var order Order
	err := trm.QuerierFrom(ctx, r.db).GetContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

func (r *postgresRepo) selectOrders(ctx context.Context, query string, args ...any) ([]entities.Order, error) {
	var orders []Order
	if err := trm.QuerierFrom(ctx, r.db).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	return OrdersToEntities(orders), nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}
