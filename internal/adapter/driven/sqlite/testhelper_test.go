package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a migrated, named shared in-memory database. The name is
// derived from t.Name() so tests do not share rows.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// WAL does not apply to in-memory databases, so journal_mode is omitted.
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	open := func(maxConns int) *sql.DB {
		conn, err := sql.Open("sqlite", dsn)
		require.NoError(t, err)
		conn.SetMaxOpenConns(maxConns)
		require.NoError(t, conn.PingContext(context.Background()))
		return conn
	}

	writer := open(1)
	reader := open(4)
	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	version, err := RunMigrations(db.Writer)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	return db
}
