package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/leanttro/billing-service/internal/db/sqlc"
	"github.com/leanttro/billing-service/internal/domain/ports"
	"github.com/leanttro/billing-service/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// queriesFor binds queries to the caller's executor, falling back to the pool
func queriesFor(db ports.DBTX, fallback *sqlc.Queries) *sqlc.Queries {
	if db != nil {
		return sqlc.New(db)
	}
	return fallback
}

// pgNumericToDecimal converts pgtype.Numeric to decimal.Decimal.
// NULL converts to zero.
func pgNumericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	str, err := n.MarshalJSON()
	if err != nil {
		return decimal.Zero, fmt.Errorf("marshal numeric: %w", err)
	}
	// Remove quotes from JSON string
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	return decimal.NewFromString(string(str))
}

// decimalToPgNumeric converts decimal.Decimal to pgtype.Numeric
func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return n, fmt.Errorf("convert amount: %w", err)
	}
	return n, nil
}

// pgDate converts a calendar date to pgtype.Date, dropping the clock part
func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: timeutil.DateOf(t), Valid: true}
}

func pgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// timePtr returns nil for NULL timestamps
func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time.UTC()
	return &t
}
