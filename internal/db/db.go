package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"storefront-client/internal/config"
	"storefront-client/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ClientStateSchema creates the key-value table that backs durable client state.
const ClientStateSchema = `
CREATE TABLE IF NOT EXISTS client_state (
	namespace   TEXT NOT NULL,
	state_key   TEXT NOT NULL,
	state_value TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (namespace, state_key)
);`

// NewDatabase opens and pings the SQL database selected by cfg.StoreDriver.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver, err := driverFor(cfg)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		if err := ensureDir(cfg.StorePath); err != nil {
			return nil, err
		}
	}
	return newDatabaseWithDriver(ctx, driver, buildDSN(cfg))
}

func newDatabaseWithDriver(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	logger.FromCtx(ctx).Debug("database connection established", zap.String("driver", driver))
	return db, nil
}

func driverFor(cfg *config.Config) (string, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return DriverPostgres, nil
	case config.StoreSQLite:
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("store driver %q is not SQL backed", cfg.StoreDriver)
	}
}

func buildDSN(cfg *config.Config) string {
	if cfg.StoreDriver == config.StorePostgres {
		return cfg.DBURL
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.StorePath)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
