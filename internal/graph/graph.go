// Package graph builds the one-letter adjacency graph over a word set.
//
// Two words are adjacent iff they have the same length and differ in exactly
// one position. The graph is symmetric, immutable once built, and safe for
// concurrent reads without locking.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robalobadob/wordladder/internal/words"
)

// Sentinel errors for graph construction.
var (
	// ErrWordTooShort is returned for word lengths below 2.
	ErrWordTooShort = errors.New("graph: words must be at least 2 letters")

	// ErrNilSet is returned when Build receives a nil word set.
	ErrNilSet = errors.New("graph: word set is nil")

	// ErrInvalidEdge is returned when persisted adjacency violates the
	// one-letter or symmetry invariant.
	ErrInvalidEdge = errors.New("graph: invalid edge")
)

// Graph maps each word to its sorted one-letter neighbours.
type Graph struct {
	length int
	adj    map[string][]string
	edges  int
}

// Build compares every pair of words in ws and links those one letter apart.
//
// Complexity: O(n²·L). It runs once per length at start-up or cache build.
func Build(ws *words.Set) (*Graph, error) {
	if ws == nil {
		return nil, ErrNilSet
	}
	if ws.Length() < 2 {
		return nil, fmt.Errorf("%w: length %d", ErrWordTooShort, ws.Length())
	}

	list := ws.Words()
	g := &Graph{length: ws.Length(), adj: make(map[string][]string, len(list))}
	for _, w := range list {
		g.adj[w] = nil
	}
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if OneLetterDiff(list[i], list[j]) {
				g.adj[list[i]] = append(g.adj[list[i]], list[j])
				g.adj[list[j]] = append(g.adj[list[j]], list[i])
				g.edges++
			}
		}
	}
	// list is sorted and j > i, so neighbour slices are already ascending.
	return g, nil
}

// FromAdjacency rebuilds a Graph from persisted adjacency, checking the
// edge invariant before trusting it.
func FromAdjacency(length int, adj map[string][]string) (*Graph, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: length %d", ErrWordTooShort, length)
	}
	g := &Graph{length: length, adj: make(map[string][]string, len(adj))}
	for w, nbrs := range adj {
		if len(w) != length {
			return nil, fmt.Errorf("%w: %q has length %d", ErrInvalidEdge, w, len(w))
		}
		cp := append([]string(nil), nbrs...)
		sort.Strings(cp)
		g.adj[w] = cp
	}
	half := 0
	for w, nbrs := range g.adj {
		for _, n := range nbrs {
			if !OneLetterDiff(w, n) {
				return nil, fmt.Errorf("%w: %s-%s", ErrInvalidEdge, w, n)
			}
			if !g.HasEdge(n, w) {
				return nil, fmt.Errorf("%w: %s-%s is not symmetric", ErrInvalidEdge, w, n)
			}
			half++
		}
	}
	g.edges = half / 2
	return g, nil
}

// Length is the word length every vertex shares.
func (g *Graph) Length() int { return g.length }

// Len is the number of vertices.
func (g *Graph) Len() int { return len(g.adj) }

// Edges is the number of undirected edges.
func (g *Graph) Edges() int { return g.edges }

// Has reports whether w is a vertex.
func (g *Graph) Has(w string) bool {
	_, ok := g.adj[w]
	return ok
}

// Neighbors returns w's neighbours in ascending order, or nil when w is
// absent. Callers must not modify the slice.
func (g *Graph) Neighbors(w string) []string { return g.adj[w] }

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b string) bool {
	nbrs := g.adj[a]
	i := sort.SearchStrings(nbrs, b)
	return i < len(nbrs) && nbrs[i] == b
}

// Words returns all vertices in ascending order.
func (g *Graph) Words() []string {
	out := make([]string, 0, len(g.adj))
	for w := range g.adj {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Adjacency returns a copy of the neighbour map for persistence.
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for w, nbrs := range g.adj {
		out[w] = append([]string(nil), nbrs...)
	}
	return out
}

// Hamming counts differing positions. Words of unequal length return -1.
func Hamming(a, b string) int {
	if len(a) != len(b) {
		return -1
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// OneLetterDiff reports whether a and b have equal length and differ in
// exactly one position.
func OneLetterDiff(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	diff := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			diff++
			if diff > 1 {
				return false
			}
		}
	}
	return diff == 1
}
