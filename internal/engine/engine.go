// internal/engine/engine.go
//
// The ladder engine: one explicit object owning the puzzle catalog and
// talking to an injected session store.
// Responsibilities:
//   - Warm: load the corpus, then load or build (and persist) the word sets,
//     graphs and precomputed pairs for every configured word length.
//   - Publish the finished catalog atomically; callers before that get
//     ErrNotReady.
//   - Serve the session operations (session.go) and read-only queries
//     (stats.go).

package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/cache"
	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/graph"
	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/pairs"
	"github.com/robalobadob/wordladder/internal/store"
	"github.com/robalobadob/wordladder/internal/words"
)

// Errors surfaced to callers. State and rule errors alias the game and
// store sentinels so errors.Is works against either.
var (
	ErrNotFound          = store.ErrNotFound
	ErrUnauthorized      = errors.New("engine: session belongs to another principal")
	ErrAlreadyComplete   = game.ErrAlreadyComplete
	ErrNotComplete       = game.ErrNotComplete
	ErrInvalidDifficulty = game.ErrInvalidDifficulty
	ErrNoPairs           = errors.New("engine: no precomputed pairs for difficulty")
	ErrNotReady          = errors.New("engine: catalog still building")
)

// Engine is safe for concurrent use once constructed.
type Engine struct {
	rules   game.Rules
	store   store.Store
	src     words.Source
	minFreq int

	artifacts    *cache.Store
	cacheTimeout time.Duration
	pairTarget   int
	seed         int64

	now       func() time.Time
	newID     func() string
	dailySalt string

	rngMu sync.Mutex
	rng   *rand.Rand

	cat   atomic.Pointer[catalog]
	locks keyedMutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithCorpus sets the corpus source and admission threshold.
func WithCorpus(src words.Source, minFreq int) Option {
	return func(e *Engine) { e.src, e.minFreq = src, minFreq }
}

// WithArtifactCache persists built artifacts in s. Loads give up after
// timeout (0 means no limit) and fall back to a rebuild.
func WithArtifactCache(s *cache.Store, timeout time.Duration) Option {
	return func(e *Engine) { e.artifacts, e.cacheTimeout = s, timeout }
}

// WithPairTarget caps precomputed pairs per length (0: min(500, 2n)).
func WithPairTarget(n int) Option { return func(e *Engine) { e.pairTarget = n } }

// WithSeed fixes the random source used for sampling and pair selection.
func WithSeed(seed int64) Option { return func(e *Engine) { e.seed = seed } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithIDs replaces uuid.NewString as the session id generator.
func WithIDs(gen func() string) Option { return func(e *Engine) { e.newID = gen } }

// WithDailySalt keys the ladder-of-the-day selection.
func WithDailySalt(salt string) Option { return func(e *Engine) { e.dailySalt = salt } }

// New returns an engine with an empty catalog. Call Warm before serving.
func New(rules game.Rules, st store.Store, opts ...Option) *Engine {
	e := &Engine{
		rules:   rules,
		store:   st,
		src:     words.EmbeddedSource(),
		minFreq: words.DefaultMinFrequency,
		seed:    time.Now().UnixNano(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	return e
}

// Rules returns the rules the engine scores with.
func (e *Engine) Rules() game.Rules { return e.rules }

// book is the read-only material for one word length.
type book struct {
	words  *words.Set
	finder *ladder.Finder
	pairs  []pairs.Pair
}

type catalog struct {
	books       map[int]*book
	origin      cache.Origin
	fingerprint string
	readyAt     time.Time
}

// Ready reports whether Warm has published a catalog.
func (e *Engine) Ready() bool { return e.cat.Load() != nil }

func (e *Engine) catalog() (*catalog, error) {
	c := e.cat.Load()
	if c == nil {
		return nil, ErrNotReady
	}
	return c, nil
}

func (e *Engine) settings() string {
	return fmt.Sprintf("%s minfreq=%d target=%d", e.rules.Fingerprint(), e.minFreq, e.pairTarget)
}

// Warm builds or loads the catalog and publishes it. It is safe to call
// again (for instance after a corpus change); sessions in flight keep
// working against the new catalog.
//
// A warm start only hashes the corpus bytes; the corpus is parsed when the
// artifacts have to be rebuilt. If the corpus cannot be read at all, the
// last good artifacts on disk are served, and only without those does the
// engine fall back to the built-in word lists, which are never persisted.
func (e *Engine) Warm(ctx context.Context) error {
	start := time.Now()
	art, origin, fp, err := e.loadArtifacts(ctx)
	if err != nil {
		return err
	}

	cat, err := e.assemble(art)
	if err != nil && origin == cache.OriginCache {
		// checksums passed but the content breaks graph invariants
		log.Warn().Err(err).Msg("cached artifacts invalid, rebuilding")
		if art, origin, err = e.rebuild(ctx, fp); err != nil {
			return err
		}
		cat, err = e.assemble(art)
	}
	if err != nil {
		return err
	}
	cat.origin, cat.fingerprint, cat.readyAt = origin, art.Fingerprint, e.now()
	e.cat.Store(cat)

	for _, n := range e.rules.Lengths() {
		b := cat.books[n]
		log.Info().
			Int("length", n).
			Int("words", b.words.Len()).
			Int("edges", b.finder.Graph().Edges()).
			Int("pairs", len(b.pairs)).
			Msg("ladder catalog")
	}
	log.Info().Str("origin", string(origin)).Dur("took", time.Since(start)).Msg("ladder engine ready")
	return nil
}

// loadArtifacts returns the artifacts to serve and the corpus fingerprint.
// fp is empty when the corpus could not be read.
func (e *Engine) loadArtifacts(ctx context.Context) (*cache.Artifacts, cache.Origin, string, error) {
	fp, err := cache.SourceFingerprint(e.src, e.settings())
	if err != nil {
		log.Warn().Err(err).Str("source", e.src.Name()).Msg("corpus unreadable, trying last good artifacts")
		if e.artifacts != nil {
			art, lerr := cache.LoadLatest(ctx, e.artifacts, e.cacheTimeout)
			if lerr == nil {
				return art, cache.OriginCache, "", nil
			}
			log.Warn().Err(lerr).Msg("no usable artifacts on disk")
		}
		art, origin, err := e.rebuild(ctx, "")
		return art, origin, "", err
	}

	build := func(ctx context.Context) (*cache.Artifacts, error) {
		return e.build(ctx, words.LoadOrFallback(e.src, e.rules.Lengths(), e.minFreq))
	}
	art, origin, err := cache.LoadOrBuild(ctx, e.artifacts, fp, e.cacheTimeout, build)
	return art, origin, fp, err
}

// rebuild builds fresh artifacts. With a corpus fingerprint they are
// persisted; without one they came from the fallback lists and are not.
func (e *Engine) rebuild(ctx context.Context, fp string) (*cache.Artifacts, cache.Origin, error) {
	art, err := e.build(ctx, words.LoadOrFallback(e.src, e.rules.Lengths(), e.minFreq))
	if err != nil {
		return nil, "", err
	}
	if fp == "" {
		return art, cache.OriginFallback, nil
	}
	art.Fingerprint = fp
	if e.artifacts != nil {
		if serr := e.artifacts.Save(ctx, art); serr != nil {
			log.Warn().Err(serr).Msg("persist artifact cache")
		}
	}
	return art, cache.OriginBuilt, nil
}

// build runs graph construction and pair sampling for each length in
// parallel. Each goroutine gets its own rand source.
func (e *Engine) build(ctx context.Context, sets map[int]*words.Set) (*cache.Artifacts, error) {
	art := &cache.Artifacts{
		Words:  make(map[int][]string, len(sets)),
		Graphs: make(map[int]map[string][]string, len(sets)),
		Pairs:  make(map[int][]pairs.Pair, len(sets)),
	}
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	for n, ws := range sets {
		wg.Add(1)
		go func(n int, ws *words.Set) {
			defer wg.Done()
			g, err := graph.Build(ws)
			if err == nil {
				var ps []pairs.Pair
				ps, err = pairs.Precompute(ctx, ladder.NewFinder(g, nil), ws, pairs.Options{
					Band:   e.rules.Band,
					Target: e.pairTarget,
					Rand:   rand.New(rand.NewSource(e.seed + int64(n))),
				})
				if err == nil {
					mu.Lock()
					art.Words[n] = ws.Words()
					art.Graphs[n] = g.Adjacency()
					art.Pairs[n] = ps
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("build length %d: %w", n, err)
			}
			mu.Unlock()
		}(n, ws)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return art, nil
}

// assemble turns artifacts into live books, re-validating graphs and pairs
// and seeding each path cache with the precomputed solutions.
func (e *Engine) assemble(art *cache.Artifacts) (*catalog, error) {
	cat := &catalog{books: make(map[int]*book, len(art.Words))}
	for _, n := range e.rules.Lengths() {
		list, ok := art.Words[n]
		if !ok {
			return nil, fmt.Errorf("artifacts lack length %d", n)
		}
		ws := words.NewSet(n, list)
		g, err := graph.FromAdjacency(n, art.Graphs[n])
		if err != nil {
			return nil, fmt.Errorf("length %d: %w", n, err)
		}
		if g.Len() != ws.Len() {
			return nil, fmt.Errorf("length %d: graph has %d words, set has %d", n, g.Len(), ws.Len())
		}

		f := ladder.NewFinder(g, nil)
		ps := make([]pairs.Pair, 0, len(art.Pairs[n]))
		for _, p := range art.Pairs[n] {
			if err := p.Validate(g, e.rules.Band); err != nil {
				log.Warn().Err(err).Int("length", n).Msg("dropping pair")
				continue
			}
			f.Cache().Put(p.Path)
			ps = append(ps, p)
		}
		if len(ps) == 0 {
			log.Warn().Int("length", n).Msg("no playable pairs for this length")
		}
		cat.books[n] = &book{words: ws, finder: f, pairs: ps}
	}
	return cat, nil
}

func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}
