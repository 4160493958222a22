package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both the pool and a transaction.
// It matches the interface generated query code expects.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...interface{}) pgx.Row
}

// TransactionManager manages database transactions
type TransactionManager interface {
	// WithTransaction runs fn in a write transaction. Any error from fn rolls
	// back everything fn wrote.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error

	// WithReadOnlyTransaction runs fn in a read-only transaction so that all
	// reads observe one snapshot
	WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// DBPort is the database as the billing service sees it: a querier for
// statements outside a transaction plus transaction management
type DBPort interface {
	// Querier runs statements on the pool, each in its own implicit transaction
	Querier() DBTX
	Ping(ctx context.Context) error
	TransactionManager
}
