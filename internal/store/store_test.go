package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/sqldb"
	"github.com/robalobadob/wordladder/internal/store"
)

var base = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func session(id string, started time.Time) *game.Session {
	return &game.Session{
		ID:          id,
		Principal:   "u-" + id,
		Difficulty:  game.Easy,
		WordLength:  4,
		StartWord:   "COLD",
		TargetWord:  "WARM",
		CurrentWord: "COLD",
		IdealPath:   []string{"COLD", "CORD", "CARD", "WARD", "WARM"},
		BaseReward:  30,
		HintCost:    10,
		StartedAt:   started,
	}
}

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) store.Store
	st       store.Store
	ctx      context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.st = s.newStore(s.T())
}

func (s *StoreSuite) TestGetMissing() {
	_, err := s.st.Get(s.ctx, "nope")
	s.Require().ErrorIs(err, store.ErrNotFound)
}

func (s *StoreSuite) TestSaveGetUpdate() {
	g := session("a", base)
	s.Require().NoError(s.st.Save(s.ctx, g))

	got, err := s.st.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Require().Equal(g, got)

	got.CurrentWord = "CORD"
	got.MoveCount = 1
	got.Mistakes = 2
	got.HintUses, got.HintCost, got.HintSpent = 1, 20, 10
	got.Complete = true
	got.CompletedAt = base.Add(42 * time.Second)
	s.Require().NoError(s.st.Save(s.ctx, got))

	again, err := s.st.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Require().Equal(got, again)
}

func (s *StoreSuite) TestReturnedCopiesAreIndependent() {
	s.Require().NoError(s.st.Save(s.ctx, session("a", base)))
	got, err := s.st.Get(s.ctx, "a")
	s.Require().NoError(err)
	got.IdealPath[1] = "XXXX"
	got.Mistakes = 7

	fresh, err := s.st.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Require().Equal("CORD", fresh.IdealPath[1])
	s.Require().Zero(fresh.Mistakes)
}

func (s *StoreSuite) TestCountDeleteAndExpire() {
	for i, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.st.Save(s.ctx, session(id, base.Add(time.Duration(i)*time.Hour))))
	}
	n, err := s.st.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(3, n)

	s.Require().NoError(s.st.Delete(s.ctx, "b"))
	s.Require().NoError(s.st.Delete(s.ctx, "b"))

	gone, err := s.st.DeleteStartedBefore(s.ctx, base.Add(3*time.Hour))
	s.Require().NoError(err)
	s.Require().Equal(2, gone)

	n, err = s.st.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().Zero(n)
}

func (s *StoreSuite) TestConcurrentSaves() {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := session("shared", base)
			g.MoveCount = i
			s.NoError(s.st.Save(s.ctx, g))
		}(i)
	}
	wg.Wait()
	n, err := s.st.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, n)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) store.Store { return store.NewMemoryStore() }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) store.Store {
		ctx := context.Background()
		db, err := sqldb.Open(ctx, sqldb.SQLite, filepath.Join(t.TempDir(), "sessions.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		st, err := store.NewSQLStore(ctx, db, sqldb.SQLite)
		require.NoError(t, err)
		// a second migration pass is a no-op
		_, err = store.NewSQLStore(ctx, db, sqldb.SQLite)
		require.NoError(t, err)
		return st
	}})
}

func TestRunJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.NewMemoryStore()
	now := base.Add(48 * time.Hour)
	require.NoError(t, st.Save(ctx, session("old", base)))
	require.NoError(t, st.Save(ctx, session("new", now.Add(-time.Minute))))

	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, st, 24*time.Hour, 5*time.Millisecond, func() time.Time { return now })
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := st.Get(ctx, "old")
		return err != nil
	}, 2*time.Second, 5*time.Millisecond)

	_, err := st.Get(ctx, "new")
	require.NoError(t, err)

	cancel()
	<-done
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	st, closeFn, err := store.Open(ctx, "memory", "")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, session("a", base)))
	require.NoError(t, closeFn())

	st, closeFn, err = store.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, session("a", base)))
	require.NoError(t, closeFn())

	_, _, err = store.Open(ctx, "redis", "")
	require.ErrorIs(t, err, sqldb.ErrUnknownDialect)
}
