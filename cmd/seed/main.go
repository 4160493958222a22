package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/leanttro/billing-service/internal/app"
	"github.com/leanttro/billing-service/internal/config"
	"github.com/leanttro/billing-service/internal/db/sqlc"
	"github.com/leanttro/billing-service/pkg/logging"
)

// demo subscribers, one per pricing source
var demoSubscribers = []struct {
	name         string
	email        string
	orderAmount  string // empty means the order carries no recurring amount
	withProduct  bool
	monthsActive int
}{
	{name: "Padaria Central", email: "contato@padariacentral.example", orderAmount: "149.90", monthsActive: 3},
	{name: "Studio Aurora", email: "ola@studioaurora.example", withProduct: true, monthsActive: 14},
	{name: "Oficina do Zé", email: "ze@oficina.example", monthsActive: 1},
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := logging.New(cfg.Logger.Development, cfg.Logger.Level)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync() //nolint:errcheck

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	var ids []uuid.UUID
	err = pgx.BeginFunc(ctx, application.DB.Pool(), func(tx pgx.Tx) error {
		ids, err = seedCatalog(ctx, sqlc.New(tx))
		return err
	})
	if err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	for i, id := range ids {
		result, err := application.Billing.GenerateFutureInvoices(ctx, id.String())
		if err != nil {
			log.Fatalf("Failed to generate invoices for %s: %v", id, err)
		}
		logger.Info("Seeded subscriber",
			zap.String("name", demoSubscribers[i].name),
			zap.String("subscriber_id", id.String()),
			zap.String("outcome", string(result.Outcome)),
			zap.Int("invoices_created", len(result.Created)),
		)
		fmt.Printf("%s\t%s\n", id, demoSubscribers[i].name)
	}
}

func seedCatalog(ctx context.Context, q *sqlc.Queries) ([]uuid.UUID, error) {
	product, err := q.CreateProduct(ctx, sqlc.CreateProductParams{
		ID:             uuid.New(),
		Name:           "Site Institucional",
		RecurringPrice: numeric("89.90"),
		Active:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	now := time.Now().UTC()
	ids := make([]uuid.UUID, 0, len(demoSubscribers))
	for _, demo := range demoSubscribers {
		since := now.AddDate(0, -demo.monthsActive, 0)
		sub, err := q.CreateSubscriber(ctx, sqlc.CreateSubscriberParams{
			ID:        uuid.New(),
			Name:      demo.name,
			Email:     demo.email,
			CreatedAt: pgtype.Timestamptz{Time: since, Valid: true},
		})
		if err != nil {
			return nil, fmt.Errorf("create subscriber %s: %w", demo.name, err)
		}

		order := sqlc.CreateOrderParams{
			ID:           uuid.New(),
			SubscriberID: sub.ID,
			CreatedAt:    pgtype.Timestamptz{Time: since, Valid: true},
		}
		if demo.orderAmount != "" {
			order.RecurringAmount = numeric(demo.orderAmount)
		}
		if demo.withProduct {
			order.ProductID = uuid.NullUUID{UUID: product.ID, Valid: true}
		}
		if _, err := q.CreateOrder(ctx, order); err != nil {
			return nil, fmt.Errorf("create order for %s: %w", demo.name, err)
		}
		ids = append(ids, sub.ID)
	}
	return ids, nil
}

func numeric(s string) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		panic(err)
	}
	return n
}
