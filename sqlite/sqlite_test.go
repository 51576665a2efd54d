package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webseed/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates the cache schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var n int
		err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM cache_entries").Scan(&n)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("uses WAL journaling for file databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
		require.NoError(t, err)
		require.Equal(t, "wal", mode)
	})

	t.Run("fails when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/cache.db")
		require.Error(t, db.Open())
	})
}

func TestDB_Path(t *testing.T) {
	t.Parallel()

	require.Equal(t, ":memory:", sqlite.NewDB(":memory:").Path())
}

func TestDB_CloseUnopened(t *testing.T) {
	t.Parallel()

	// Close before Open happens when wiring fails partway.
	require.NoError(t, sqlite.NewDB(":memory:").Close())
}
