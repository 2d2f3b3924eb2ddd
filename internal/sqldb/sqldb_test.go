package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/sqldb"
)

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x=? AND y=?`
	require.Equal(t, q, sqldb.SQLite.Rebind(q))
	require.Equal(t, `SELECT a FROM t WHERE x=$1 AND y=$2`, sqldb.Postgres.Rebind(q))
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]sqldb.Dialect{
		"sqlite": sqldb.SQLite, "SQLite3": sqldb.SQLite, "postgres": sqldb.Postgres, "pg": sqldb.Postgres,
	} {
		d, err := sqldb.ParseDialect(in)
		require.NoError(t, err)
		require.Equal(t, want, d)
	}
	_, err := sqldb.ParseDialect("mysql")
	require.ErrorIs(t, err, sqldb.ErrUnknownDialect)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sqldb.Open(ctx, sqldb.SQLite, filepath.Join(t.TempDir(), "nested", "m.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte(`CREATE TABLE a (id INTEGER PRIMARY KEY);`)},
		"002_b.sql": {Data: []byte(`INSERT INTO a (id) VALUES (1);`)},
		"notes.txt": {Data: []byte(`ignored`)},
	}
	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.SQLite, "test", fsys))
	// a second run must not re-insert
	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.SQLite, "test", fsys))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM a`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	require.Equal(t, 2, n)
}
