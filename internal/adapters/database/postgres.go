package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leanttro/billing-service/pkg/observability"
	"go.uber.org/zap"
)

// PostgreSQLConfig contains configuration for the PostgreSQL pool
type PostgreSQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// Pool settings
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultPostgreSQLConfig returns default pool settings for a database
func DefaultPostgreSQLConfig(host string, port int, user, password, name string) *PostgreSQLConfig {
	return &PostgreSQLConfig{
		Host:            host,
		Port:            port,
		User:            user,
		Password:        password,
		Name:            name,
		SSLMode:         "disable",
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// URL renders the config as a postgres:// connection string.
// Credentials are escaped so passwords from secret stores may hold any character.
func (c *PostgreSQLConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// PostgreSQLAdapter owns the process-wide connection pool
type PostgreSQLAdapter struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgreSQLAdapter creates the pool and verifies connectivity
func NewPostgreSQLAdapter(ctx context.Context, cfg *PostgreSQLConfig, logger *zap.Logger) (*PostgreSQLAdapter, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL pool initialized",
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.Uint16("port", poolConfig.ConnConfig.Port),
		zap.Int32("max_conns", cfg.MaxConns),
		zap.Int32("min_conns", cfg.MinConns),
	)

	return &PostgreSQLAdapter{pool: pool, logger: logger}, nil
}

// Pool returns the underlying connection pool
func (a *PostgreSQLAdapter) Pool() *pgxpool.Pool {
	return a.pool
}

// Close closes the database connection pool
func (a *PostgreSQLAdapter) Close() {
	a.logger.Info("Closing PostgreSQL connection pool")
	a.pool.Close()
}

// StartPoolMonitoring periodically publishes pool utilization and warns
// when the pool is close to exhaustion. It stops when ctx is done.
func (a *PostgreSQLAdapter) StartPoolMonitoring(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.reportPoolStats()
			}
		}
	}()

	a.logger.Info("Database connection pool monitoring started",
		zap.Duration("check_interval", interval),
	)
}

func (a *PostgreSQLAdapter) reportPoolStats() {
	stat := a.pool.Stat()
	total := stat.MaxConns()
	acquired := stat.AcquiredConns()
	observability.UpdateDBPoolStats(acquired, stat.IdleConns(), total)

	if total == 0 {
		return
	}
	utilization := float64(acquired) / float64(total) * 100

	switch {
	case utilization > 95:
		a.logger.Error("Database connection pool near exhaustion",
			zap.Float64("utilization_percent", utilization),
			zap.Int32("acquired", acquired),
			zap.Int32("total", total),
		)
	case utilization > 80:
		a.logger.Warn("Database connection pool highly utilized",
			zap.Float64("utilization_percent", utilization),
			zap.Int32("acquired", acquired),
			zap.Int32("total", total),
		)
	}
}
