package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

const dialect = "postgres"

// Up applies all pending migrations
func Up(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Run executes an arbitrary goose command (up, down, status, version, redo, reset...)
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func configure() error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
