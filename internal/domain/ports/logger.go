package ports

import (
	"time"

	"github.com/leanttro/billing-service/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// Logger is the structured logger the billing core writes to
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
}

// Field is a structured logging key/value pair
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Date logs the calendar date only
func Date(key string, value time.Time) Field {
	return Field{Key: key, Value: timeutil.FormatDate(value)}
}

// Amount logs money with two decimals
func Amount(key string, value decimal.Decimal) Field {
	return Field{Key: key, Value: value.StringFixed(2)}
}

// Err logs err under the "error" key
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
