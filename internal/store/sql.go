package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/sqldb"
)

//go:embed sql/*.sql
var migrations embed.FS

// sqlStore keeps sessions in the ladder_sessions table. The same queries
// serve SQLite and Postgres; placeholders are rebound per dialect.
type sqlStore struct {
	db *sql.DB
	d  sqldb.Dialect
}

// NewSQLStore migrates db and returns a Store over it. The caller owns db.
func NewSQLStore(ctx context.Context, db *sql.DB, d sqldb.Dialect) (Store, error) {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		return nil, err
	}
	if err := sqldb.Migrate(ctx, db, d, "sessions", sub); err != nil {
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}
	return &sqlStore{db: db, d: d}, nil
}

const sessionCols = `id, principal, difficulty, word_length, start_word, target_word,
    current_word, ideal_path, base_reward, move_count, mistakes, hint_uses,
    hint_cost, hint_spent, daily_key, started_at, completed_at, complete`

func (s *sqlStore) Save(ctx context.Context, g *game.Session) error {
	path, err := json.Marshal(g.IdealPath)
	if err != nil {
		return fmt.Errorf("encode ideal path: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.d.Rebind(`
        INSERT INTO ladder_sessions (`+sessionCols+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            current_word=excluded.current_word,
            move_count=excluded.move_count,
            mistakes=excluded.mistakes,
            hint_uses=excluded.hint_uses,
            hint_cost=excluded.hint_cost,
            hint_spent=excluded.hint_spent,
            completed_at=excluded.completed_at,
            complete=excluded.complete`),
		g.ID, g.Principal, string(g.Difficulty), g.WordLength, g.StartWord, g.TargetWord,
		g.CurrentWord, string(path), g.BaseReward, g.MoveCount, g.Mistakes, g.HintUses,
		g.HintCost, g.HintSpent, g.DailyKey, toMillis(g.StartedAt), toMillis(g.CompletedAt), boolInt(g.Complete),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", g.ID, err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, id string) (*game.Session, error) {
	var (
		g                 game.Session
		diff, path        string
		started, finished int64
		complete          int
	)
	err := s.db.QueryRowContext(ctx, s.d.Rebind(`SELECT `+sessionCols+` FROM ladder_sessions WHERE id=?`), id).Scan(
		&g.ID, &g.Principal, &diff, &g.WordLength, &g.StartWord, &g.TargetWord,
		&g.CurrentWord, &path, &g.BaseReward, &g.MoveCount, &g.Mistakes, &g.HintUses,
		&g.HintCost, &g.HintSpent, &g.DailyKey, &started, &finished, &complete,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(path), &g.IdealPath); err != nil {
		return nil, fmt.Errorf("decode ideal path of %s: %w", id, err)
	}
	g.Difficulty = game.Difficulty(diff)
	g.StartedAt = fromMillis(started)
	g.CompletedAt = fromMillis(finished)
	g.Complete = complete != 0
	return &g, nil
}

func (s *sqlStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM ladder_sessions WHERE id=?`), id)
	return err
}

func (s *sqlStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ladder_sessions`).Scan(&n)
	return n, err
}

func (s *sqlStore) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM ladder_sessions WHERE started_at < ?`), toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Zero times round-trip as 0.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
