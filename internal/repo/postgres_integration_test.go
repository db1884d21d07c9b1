//go:build integration

package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/SergeyBogomolovv/order-pipeline/internal/postgres"
	"github.com/SergeyBogomolovv/order-pipeline/internal/repo"
	"github.com/SergeyBogomolovv/order-pipeline/pkg/trm"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresRepoSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sqlx.DB
	tx        trm.Manager
}

func TestPostgresRepoSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepoSuite))
}

func (s *PostgresRepoSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("orders"),
		tcpostgres.WithUsername("orders"),
		tcpostgres.WithPassword("orders"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", dsn)
	s.Require().NoError(err)
	s.db = db
	s.tx = trm.NewManager(db)

	s.Require().NoError(postgres.Migrate(ctx, db))
}

func (s *PostgresRepoSuite) SetupTest() {
	_, err := s.db.Exec("TRUNCATE TABLE orders")
	s.Require().NoError(err)
}

func (s *PostgresRepoSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresRepoSuite) newOrder(customer string) entities.Order {
	order, err := entities.NewOrder(customer, "Book", 2, decimal.RequireFromString("19.99"))
	s.Require().NoError(err)
	return order
}

func (s *PostgresRepoSuite) TestCreateAndGet() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)
	order := s.newOrder("Ana")

	s.Require().NoError(r.CreateOrder(ctx, order))

	got, err := r.GetOrderByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(order.ID, got.ID)
	s.Equal(entities.StatusPending, got.Status)
	s.Equal("Ana", got.Customer)
	s.Equal(2, got.Quantity)
	s.True(order.TotalValue.Equal(got.TotalValue))
	s.WithinDuration(order.CreatedAt, got.CreatedAt, time.Millisecond)
	s.False(got.EventPublished)
}

func (s *PostgresRepoSuite) TestGetMissing() {
	_, err := repo.NewPostgresRepo(s.db).GetOrderByID(context.Background(), uuid.New())
	s.ErrorIs(err, entities.ErrOrderNotFound)
}

func (s *PostgresRepoSuite) TestUpdateStatus() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)
	order := s.newOrder("Ana")
	s.Require().NoError(r.CreateOrder(ctx, order))

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		locked, err := r.GetOrderForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		s.Equal(entities.StatusPending, locked.Status)
		return r.UpdateStatus(ctx, order.ID, entities.StatusProcessing)
	})
	s.Require().NoError(err)

	got, err := r.GetOrderByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(entities.StatusProcessing, got.Status)

	s.ErrorIs(r.UpdateStatus(ctx, uuid.New(), entities.StatusCompleted), entities.ErrOrderNotFound)
}

func (s *PostgresRepoSuite) TestRollbackKeepsStatus() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)
	order := s.newOrder("Ana")
	s.Require().NoError(r.CreateOrder(ctx, order))

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := r.UpdateStatus(ctx, order.ID, entities.StatusCompleted); err != nil {
			return err
		}
		return entities.ErrTransitionNotAllowed
	})
	s.ErrorIs(err, entities.ErrTransitionNotAllowed)

	got, err := r.GetOrderByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(entities.StatusPending, got.Status)
}

func (s *PostgresRepoSuite) TestRejectsInvalidStatus() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)
	order := s.newOrder("Ana")
	s.Require().NoError(r.CreateOrder(ctx, order))

	s.Error(r.UpdateStatus(ctx, order.ID, entities.Status("Shipped")))
}

func (s *PostgresRepoSuite) TestListAndUnpublished() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)

	first := s.newOrder("Ana")
	second := s.newOrder("Bruno")
	s.Require().NoError(r.CreateOrder(ctx, first))
	s.Require().NoError(r.CreateOrder(ctx, second))
	s.Require().NoError(r.MarkEventPublished(ctx, second.ID, time.Now()))

	all, err := r.ListOrders(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	latest, err := r.LatestOrders(ctx, 1)
	s.Require().NoError(err)
	s.Len(latest, 1)

	unpublished, err := r.ListUnpublished(ctx, time.Now().Add(time.Minute), 10)
	s.Require().NoError(err)
	s.Require().Len(unpublished, 1)
	s.Equal(first.ID, unpublished[0].ID)

	none, err := r.ListUnpublished(ctx, first.CreatedAt.Add(-time.Minute), 10)
	s.Require().NoError(err)
	s.Empty(none)
}
