package cache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Origin tells where LoadOrBuild got its artifacts.
type Origin string

const (
	OriginCache Origin = "cache"
	OriginBuilt Origin = "built"
	// OriginFallback marks artifacts built from the built-in word lists
	// while the corpus was unreadable. They are never persisted.
	OriginFallback Origin = "fallback"
)

// BuildFunc produces fresh artifacts. It owns the expensive work.
type BuildFunc func(ctx context.Context) (*Artifacts, error)

// LoadOrBuild returns persisted artifacts when they load and verify within
// timeout; otherwise it builds, persists, and returns fresh ones. Load and
// save failures are logged, never returned. A nil store always builds.
func LoadOrBuild(ctx context.Context, s *Store, fingerprint string, timeout time.Duration, build BuildFunc) (*Artifacts, Origin, error) {
	if s != nil {
		a, err := loadWithTimeout(ctx, s, fingerprint, timeout)
		if err == nil {
			return a, OriginCache, nil
		}
		log.Warn().Err(err).Msg("artifact cache unusable, rebuilding")
	}

	a, err := build(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("build artifacts: %w", err)
	}
	a.Fingerprint = fingerprint

	if s != nil {
		sctx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			sctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := s.Save(sctx, a); err != nil {
			log.Warn().Err(err).Msg("persist artifact cache")
		}
	}
	return a, OriginBuilt, nil
}

// LoadLatest loads whatever verified artifacts s holds, regardless of
// fingerprint, giving up after timeout. It serves starts where the corpus
// cannot be read and so cannot be fingerprinted.
func LoadLatest(ctx context.Context, s *Store, timeout time.Duration) (*Artifacts, error) {
	if s == nil {
		return nil, fmt.Errorf("load latest artifacts: %w", ErrMiss)
	}
	return withTimeout(ctx, timeout, s.LoadLatest)
}

func loadWithTimeout(ctx context.Context, s *Store, fingerprint string, timeout time.Duration) (*Artifacts, error) {
	return withTimeout(ctx, timeout, func(ctx context.Context) (*Artifacts, error) {
		return s.Load(ctx, fingerprint)
	})
}

func withTimeout(ctx context.Context, timeout time.Duration, load func(context.Context) (*Artifacts, error)) (*Artifacts, error) {
	if timeout <= 0 {
		return load(ctx)
	}
	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		a   *Artifacts
		err error
	}
	ch := make(chan result, 1)
	go func() {
		a, err := load(lctx)
		ch <- result{a, err}
	}()
	select {
	case r := <-ch:
		return r.a, r.err
	case <-lctx.Done():
		return nil, fmt.Errorf("load artifacts: %w", lctx.Err())
	}
}

var ErrUnknownBackend = errors.New("cache: unknown backend")

// Open returns a Store for kind ("dir", "sqlite") rooted at dir. Kind
// "none" (or "") returns a nil Store, which LoadOrBuild treats as
// build-only.
func Open(ctx context.Context, kind, dir string) (*Store, error) {
	switch strings.ToLower(kind) {
	case "", "none", "off":
		return nil, nil
	case "dir", "file", "files":
		b, err := NewDirBackend(dir)
		if err != nil {
			return nil, err
		}
		return NewStore(b), nil
	case "sqlite", "sqlite3":
		b, err := OpenSQLiteBackend(ctx, filepath.Join(dir, "ladder.db"))
		if err != nil {
			return nil, err
		}
		return NewStore(b), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
