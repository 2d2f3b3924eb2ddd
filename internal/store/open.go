package store

import (
	"context"
	"strings"

	"github.com/robalobadob/wordladder/internal/sqldb"
)

// Open returns the store named by kind ("memory", "sqlite", "postgres")
// and a func that releases it. dsn is ignored for memory.
func Open(ctx context.Context, kind, dsn string) (Store, func() error, error) {
	if k := strings.ToLower(strings.TrimSpace(kind)); k == "" || k == "memory" || k == "mem" {
		return NewMemoryStore(), func() error { return nil }, nil
	}
	d, err := sqldb.ParseDialect(kind)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqldb.Open(ctx, d, dsn)
	if err != nil {
		return nil, nil, err
	}
	st, err := NewSQLStore(ctx, db, d)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db.Close, nil
}
