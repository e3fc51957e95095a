package sqlitestore

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"musterbot/internal/infrastructure/database/migrations"
)

// newTestPool ouvre une base vierge dans t.TempDir() avec le schéma courant.
func newTestPool(t *testing.T) *Pool {
	t.Helper()
	pool, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	files, err := fs.Glob(migrations.FS, "sqlite/*.up.sql")
	require.NoError(t, err)
	sort.Strings(files)

	conn, err := pool.Take(context.Background())
	require.NoError(t, err)
	defer pool.Put(conn)
	for _, name := range files {
		script, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		require.NoError(t, sqlitex.ExecuteScript(conn, strings.TrimSpace(string(script)), nil), name)
	}
	return pool
}

func countRows(t *testing.T, conn *sqlite.Conn, table string) int64 {
	t.Helper()
	var n int64
	err := sqlitex.Execute(conn, "SELECT COUNT(*) FROM "+table, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt64(0)
			return nil
		},
	})
	require.NoError(t, err)
	return n
}
