package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leanttro/billing-service/internal/domain/ports"
)

// DBExecutor implements ports.DBPort on top of a pgx pool
type DBExecutor struct {
	pool *pgxpool.Pool
}

// NewDBExecutor creates a new PostgreSQL database executor
func NewDBExecutor(pool *pgxpool.Pool) *DBExecutor {
	return &DBExecutor{pool: pool}
}

// Querier returns the pool for statements that need no transaction
func (db *DBExecutor) Querier() ports.DBTX {
	return db.pool
}

// Ping verifies a connection can be acquired and used
func (db *DBExecutor) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// WithTransaction runs fn inside a read-write transaction.
// The transaction commits only if fn returns nil.
func (db *DBExecutor) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return db.inTx(ctx, pgx.TxOptions{}, "transaction", fn)
}

// WithReadOnlyTransaction runs fn inside a read-only transaction so that
// multi-query reads see one snapshot
func (db *DBExecutor) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return db.inTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, "read-only transaction", fn)
}

func (db *DBExecutor) inTx(ctx context.Context, opts pgx.TxOptions, kind string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := db.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin %s: %w", kind, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", kind, err)
	}
	return nil
}
