package engine

import (
	"context"
	"sort"
	"time"

	"github.com/robalobadob/wordladder/internal/pairs"
	"github.com/robalobadob/wordladder/internal/words"
)

// LengthStats describes the catalog for one word length.
type LengthStats struct {
	Length    int     `json:"length"`
	Words     int     `json:"words"`
	Edges     int     `json:"edges"`
	Pairs     int     `json:"pairs"`
	PathCache int     `json:"pathCacheSize"`
	Hits      int64   `json:"pathCacheHits"`
	Misses    int64   `json:"pathCacheMisses"`
	HitRatio  float64 `json:"pathCacheHitRatio"`
}

// CacheStats is the monitoring snapshot of the engine.
type CacheStats struct {
	Ready          bool          `json:"ready"`
	Origin         string        `json:"origin,omitempty"`
	Fingerprint    string        `json:"fingerprint,omitempty"`
	ReadyAt        time.Time     `json:"readyAt,omitempty"`
	Lengths        []LengthStats `json:"lengths"`
	ActiveSessions int           `json:"activeSessions"`
}

// CacheStats reports catalog sizes and path cache effectiveness. Before
// Warm finishes it returns Ready=false and no lengths, not an error.
func (e *Engine) CacheStats(ctx context.Context) (CacheStats, error) {
	n, err := e.store.Count(ctx)
	if err != nil {
		return CacheStats{}, err
	}
	out := CacheStats{ActiveSessions: n, Lengths: []LengthStats{}}

	cat := e.cat.Load()
	if cat == nil {
		return out, nil
	}
	out.Ready = true
	out.Origin = string(cat.origin)
	out.Fingerprint = cat.fingerprint
	out.ReadyAt = cat.readyAt

	lengths := make([]int, 0, len(cat.books))
	for l := range cat.books {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		b := cat.books[l]
		pc := b.finder.Cache()
		hits, misses := pc.Stats()
		ls := LengthStats{
			Length:    l,
			Words:     b.words.Len(),
			Edges:     b.finder.Graph().Edges(),
			Pairs:     len(b.pairs),
			PathCache: pc.Len(),
			Hits:      hits,
			Misses:    misses,
		}
		if total := hits + misses; total > 0 {
			ls.HitRatio = float64(hits) / float64(total)
		}
		out.Lengths = append(out.Lengths, ls)
	}
	return out, nil
}

// Neighbors lists the dictionary words one letter away from word. Unknown
// words and unsupported lengths yield an empty list.
func (e *Engine) Neighbors(word string) ([]string, error) {
	cat, err := e.catalog()
	if err != nil {
		return nil, err
	}
	w := words.Normalize(word)
	b := cat.books[len(w)]
	if b == nil {
		return []string{}, nil
	}
	return append([]string{}, b.finder.Graph().Neighbors(w)...), nil
}

// Path returns a shortest ladder between two words of equal length.
func (e *Engine) Path(ctx context.Context, from, to string) ([]string, bool, error) {
	cat, err := e.catalog()
	if err != nil {
		return nil, false, err
	}
	a, z := words.Normalize(from), words.Normalize(to)
	b := cat.books[len(a)]
	if b == nil || len(a) != len(z) {
		return nil, false, nil
	}
	p, ok := b.finder.FindPath(ctx, a, z)
	return append([]string(nil), p...), ok, nil
}

// Pairs returns a copy of the precomputed pairs for a word length.
func (e *Engine) Pairs(length int) ([]pairs.Pair, error) {
	cat, err := e.catalog()
	if err != nil {
		return nil, err
	}
	b := cat.books[length]
	if b == nil {
		return nil, nil
	}
	return append([]pairs.Pair(nil), b.pairs...), nil
}
