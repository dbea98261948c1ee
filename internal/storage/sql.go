package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-client/internal/db"

	"github.com/jmoiron/sqlx"
)

// SQL stores state rows in the client_state table, scoped by namespace so
// several profiles can share one database.
type SQL struct {
	db        *sqlx.DB
	namespace string
	now       func() time.Time
}

func NewSQL(conn *sqlx.DB, namespace string) *SQL {
	return &SQL{db: conn, namespace: namespace, now: time.Now}
}

// EnsureSchema creates the client_state table when it does not exist yet.
func (s *SQL) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, db.ClientStateSchema); err != nil {
		return fmt.Errorf("storage: ensure schema: %w", err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`
		SELECT state_value FROM client_state
		WHERE namespace = ? AND state_key = ?`),
		s.namespace, key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO client_state (namespace, state_key, state_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, state_key)
		DO UPDATE SET state_value = excluded.state_value, updated_at = excluded.updated_at`),
		s.namespace, key, string(value), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		DELETE FROM client_state WHERE namespace = ? AND state_key = ?`),
		s.namespace, key,
	)
	if err != nil {
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
