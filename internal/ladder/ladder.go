// Package ladder finds shortest word ladders over a graph.Graph.
//
// A Finder runs breadth-first search on cache misses and remembers every
// path it finds, in both directions, in its PathCache. Hints are the second
// word of a shortest path, so they always lie on an optimal solution.
package ladder

import (
	"context"

	"github.com/robalobadob/wordladder/internal/graph"
)

// Finder answers path queries against one immutable graph.
type Finder struct {
	g     *graph.Graph
	cache *PathCache
}

// NewFinder binds g to cache. A nil cache gets a fresh one.
func NewFinder(g *graph.Graph, cache *PathCache) *Finder {
	if cache == nil {
		cache = NewPathCache()
	}
	return &Finder{g: g, cache: cache}
}

// Graph returns the graph the finder searches.
func (f *Finder) Graph() *graph.Graph { return f.g }

// Cache returns the finder's path cache.
func (f *Finder) Cache() *PathCache { return f.cache }

// FindPath returns a shortest ladder from start to end, inclusive of both.
// The second result is false when no ladder exists, when either word is not
// in the graph, or when ctx is cancelled mid-search.
//
// The returned slice may be shared with the cache; do not modify it.
func (f *Finder) FindPath(ctx context.Context, start, end string) ([]string, bool) {
	if start == end {
		return []string{start}, true
	}
	if p, ok := f.cache.Get(start, end); ok {
		return p, true
	}
	if !f.g.Has(start) || !f.g.Has(end) {
		return nil, false
	}

	w := newWalker(ctx, f.g, start, end)
	path, ok := w.run()
	if !ok {
		return nil, false
	}
	f.cache.Put(path)
	return path, true
}

// SuggestHint returns the word after current on a shortest ladder to
// target. It is false when current == target or target is unreachable.
func (f *Finder) SuggestHint(ctx context.Context, current, target string) (string, bool) {
	p, ok := f.FindPath(ctx, current, target)
	if !ok || len(p) < 2 {
		return "", false
	}
	return p[1], true
}

// Distance returns the number of moves on a shortest ladder.
func (f *Finder) Distance(ctx context.Context, a, b string) (int, bool) {
	p, ok := f.FindPath(ctx, a, b)
	if !ok {
		return 0, false
	}
	return len(p) - 1, true
}
