package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/filmhub/swapper-api/internal/database"
)

// testDB opens a throwaway sqlite database with the real schema, so
// repository tests exercise the actual SQL.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, "sqlite"))
	return db
}

// fixedClock returns a clock that starts at a fixed instant and moves
// forward one second per call, giving every row a distinct creation
// timestamp without sleeping.
func fixedClock() func() time.Time {
	cur := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}
