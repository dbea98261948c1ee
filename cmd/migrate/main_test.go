package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
-- +migrate Up
CREATE TABLE client_state (namespace TEXT);
CREATE INDEX client_state_ns ON client_state (namespace);

-- +migrate Down
DROP TABLE client_state;
`

func TestExtractMigrationPart(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		up := extractMigrationPart(sample, "Up")
		assert.Contains(t, up, "CREATE TABLE client_state")
		assert.Contains(t, up, "CREATE INDEX client_state_ns")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate")
	})

	t.Run("Down", func(t *testing.T) {
		down := extractMigrationPart(sample, "Down")
		assert.Contains(t, down, "DROP TABLE client_state")
		assert.NotContains(t, down, "CREATE TABLE")
	})

	t.Run("MissingSection", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart(sample, "Sideways"))
	})
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func writeMigration(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sample), 0o644))
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("UpAppliesPendingInOrder", func(t *testing.T) {
		conn, mock := newMock(t)
		dir := t.TempDir()
		writeMigration(t, dir, "0002_index.sql")
		writeMigration(t, dir, "0001_client_state.sql")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS.*schema_migrations WHERE version = \$1`).
			WithArgs("0001_client_state.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`SELECT EXISTS.*schema_migrations WHERE version = \$1`).
			WithArgs("0002_index.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE client_state").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
			WithArgs("0002_index.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))

		var out bytes.Buffer
		err := run(ctx, conn, "up", dir, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "skip 0001_client_state.sql")
		assert.Contains(t, out.String(), "1 migration(s) applied")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DownRollsBackLatest", func(t *testing.T) {
		conn, mock := newMock(t)
		dir := t.TempDir()
		writeMigration(t, dir, "0001_client_state.sql")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_client_state.sql"))
		mock.ExpectExec("DROP TABLE client_state").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM schema_migrations WHERE version = \$1`).
			WithArgs("0001_client_state.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))

		var out bytes.Buffer
		require.NoError(t, run(ctx, conn, "down", dir, &out))
		assert.Contains(t, out.String(), "roll back 0001_client_state.sql")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DownWithNothingApplied", func(t *testing.T) {
		conn, mock := newMock(t)

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		var out bytes.Buffer
		require.NoError(t, run(ctx, conn, "down", t.TempDir(), &out))
		assert.Contains(t, out.String(), "nothing to roll back")
	})

	t.Run("UnknownMode", func(t *testing.T) {
		conn, mock := newMock(t)
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := run(ctx, conn, "sideways", t.TempDir(), &bytes.Buffer{})

		assert.ErrorContains(t, err, "unknown mode")
	})
}
