package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/robalobadob/wordladder/internal/sqldb"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLiteBackend stores blobs in the ladder_artifacts table.
type SQLiteBackend struct {
	db    *sql.DB
	owned bool
}

// OpenSQLiteBackend opens (and migrates) the database file at path.
func OpenSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sqldb.Open(ctx, sqldb.SQLite, path)
	if err != nil {
		return nil, err
	}
	b, err := NewSQLiteBackend(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	b.owned = true
	return b, nil
}

// NewSQLiteBackend migrates an existing handle. Close leaves db open.
func NewSQLiteBackend(ctx context.Context, db *sql.DB) (*SQLiteBackend, error) {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		return nil, err
	}
	if err := sqldb.Migrate(ctx, db, sqldb.SQLite, "artifacts", sub); err != nil {
		return nil, fmt.Errorf("migrate artifacts: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM ladder_artifacts WHERE name=?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	return data, err
}

func (s *SQLiteBackend) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO ladder_artifacts (name, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		name, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteBackend) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
