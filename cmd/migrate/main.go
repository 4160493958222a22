package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/leanttro/billing-service/internal/app"
	"github.com/leanttro/billing-service/internal/config"
	"github.com/leanttro/billing-service/internal/db/migrations"
)

var flags = flag.NewFlagSet("migrate", flag.ExitOnError)

func main() {
	flags.Usage = usage
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) < 1 {
		flags.Usage()
		return
	}
	command := args[0]

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := app.OpenDatabase(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool.Pool())
	defer db.Close()

	if err := migrations.Run(ctx, db, command, args[1:]...); err != nil {
		log.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Print(`Usage: migrate COMMAND

Migrations are embedded in the binary; the database is configured through
the same DB_* variables as the server.

Commands:
    up                   Migrate the DB to the most recent version available
    up-by-one            Migrate the DB up by 1
    up-to VERSION        Migrate the DB to a specific VERSION
    down                 Roll back the version by 1
    down-to VERSION      Roll back to a specific VERSION
    redo                 Re-run the latest migration
    reset                Roll back all migrations
    status               Dump the migration status for the current DB
    version              Print the current version of the database

Examples:
    migrate up
    migrate down
    migrate status
`)
}
