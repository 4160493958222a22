//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leanttro/billing-service/internal/db/migrations"
	"github.com/leanttro/billing-service/internal/db/sqlc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a throwaway PostgreSQL container with all migrations applied
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("billing_test"),
		tcpostgres.WithUsername("billing"),
		tcpostgres.WithPassword("billing_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, migrations.Up(ctx, sqlDB))
	require.NoError(t, sqlDB.Close())

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// seed holds the fixture rows a test inserted
type seed struct {
	q *sqlc.Queries
	t *testing.T
}

func newSeed(t *testing.T, pool *pgxpool.Pool) *seed {
	return &seed{q: sqlc.New(pool), t: t}
}

func (s *seed) subscriber(createdAt time.Time) uuid.UUID {
	s.t.Helper()
	id := uuid.New()
	_, err := s.q.CreateSubscriber(context.Background(), sqlc.CreateSubscriberParams{
		ID:        id,
		Name:      "Subscriber " + id.String()[:8],
		Email:     id.String() + "@example.com",
		CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
	})
	require.NoError(s.t, err)
	return id
}

func (s *seed) product(price string, active bool) uuid.UUID {
	s.t.Helper()
	id := uuid.New()
	_, err := s.q.CreateProduct(context.Background(), sqlc.CreateProductParams{
		ID:             id,
		Name:           "Plan " + price,
		RecurringPrice: numeric(s.t, price),
		Active:         active,
	})
	require.NoError(s.t, err)
	return id
}

// order inserts an order; an empty amount stores NULL
func (s *seed) order(subscriberID uuid.UUID, productID *uuid.UUID, amount string, createdAt time.Time) uuid.UUID {
	s.t.Helper()
	id := uuid.New()

	params := sqlc.CreateOrderParams{
		ID:           id,
		SubscriberID: subscriberID,
		CreatedAt:    pgtype.Timestamptz{Time: createdAt, Valid: true},
	}
	if productID != nil {
		params.ProductID = uuid.NullUUID{UUID: *productID, Valid: true}
	}
	if amount != "" {
		params.RecurringAmount = numeric(s.t, amount)
	}

	_, err := s.q.CreateOrder(context.Background(), params)
	require.NoError(s.t, err)
	return id
}

func numeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(decimal.RequireFromString(s).String()))
	return n
}
