package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/events"
	"github.com/SergeyBogomolovv/order-pipeline/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderProcessor_ProcessOrderCreated(t *testing.T) {
	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		status       entities.Status
		mockBehavior func(d orderDeps, order entities.Order)
		wantErr      error
	}{
		{
			name:   "Pending to Completed",
			status: entities.StatusPending,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
				runInTx(d.tx)

				processing := order
				processing.Status = entities.StatusProcessing
				d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil).Once()
				d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusProcessing).Return(nil).Once()
				d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(processing, nil).Once()
				d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusCompleted).Return(nil).Once()
				d.cache.EXPECT().Delete(order.ID.String()).Return().Twice()
			},
		},
		{
			name:   "Already completed",
			status: entities.StatusCompleted,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
			},
		},
		{
			name:   "Redelivered while processing",
			status: entities.StatusProcessing,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
				runInTx(d.tx)

				// первый переход уже применен
				d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil).Twice()
				d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusCompleted).Return(nil).Once()
				d.cache.EXPECT().Delete(order.ID.String()).Return().Once()
			},
		},
		{
			name:   "Order not found",
			status: entities.StatusPending,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).
					Return(entities.Order{}, entities.ErrOrderNotFound)
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name:   "Store unavailable",
			status: entities.StatusPending,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).
					Return(entities.Order{}, dbError)
			},
			wantErr: dbError,
		},
		{
			name:   "Update fails",
			status: entities.StatusPending,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
				runInTx(d.tx)
				d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil)
				d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusProcessing).Return(dbError)
			},
			wantErr: dbError,
		},
		{
			name:   "Reset to Pending between steps",
			status: entities.StatusPending,
			mockBehavior: func(d orderDeps, order entities.Order) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
				runInTx(d.tx)

				// между шагами статус вернули в Pending через PATCH
				d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil).Twice()
				d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusProcessing).Return(nil).Once()
				d.cache.EXPECT().Delete(order.ID.String()).Return().Once()
			},
			wantErr: entities.ErrTransitionNotAllowed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newOrderDeps(t)
			order := testOrder(tc.status)
			tc.mockBehavior(d, order)

			p := service.NewOrderProcessor(testLogger, d.tx, d.repo, d.cache, 0)
			err := p.ProcessOrderCreated(context.Background(), events.NewOrderCreated(order))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrderProcessor_CanceledDuringDelay(t *testing.T) {
	d := newOrderDeps(t)
	order := testOrder(entities.StatusPending)

	d.repo.EXPECT().GetOrderByID(mock.Anything, order.ID).Return(order, nil)
	runInTx(d.tx)
	d.repo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil).Once()
	d.repo.EXPECT().UpdateStatus(mock.Anything, order.ID, entities.StatusProcessing).Return(nil).Once()
	d.cache.EXPECT().Delete(order.ID.String()).Return().Once()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := service.NewOrderProcessor(testLogger, d.tx, d.repo, d.cache, time.Minute)

	start := time.Now()
	err := p.ProcessOrderCreated(ctx, events.NewOrderCreated(order))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
