package storage

import (
	"context"
	"fmt"

	"storefront-client/internal/config"
	"storefront-client/internal/db"
)

// Open builds the Backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StoreFile:
		return NewFile(cfg.StorePath)
	case config.StoreSQLite, config.StorePostgres:
		conn, err := db.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := NewSQL(conn, cfg.StoreNamespace)
		if cfg.StoreDriver == config.StoreSQLite {
			// Postgres schemas are managed by cmd/migrate.
			if err := s.EnsureSchema(ctx); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil
	case config.StoreRedis:
		return NewRedis(ctx, cfg.RedisURL, cfg.StoreNamespace)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StoreDriver)
	}
}
