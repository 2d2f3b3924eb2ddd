// Package pairs precomputes puzzle start/target pairs whose shortest ladder
// falls inside a difficulty band. Live sessions draw only from these lists,
// so no path search on an unknown pair ever happens during play.
package pairs

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/robalobadob/wordladder/internal/graph"
	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/words"
)

// Sentinel errors for pair validation.
var (
	ErrBadBand     = errors.New("pairs: invalid step band")
	ErrInvalidPair = errors.New("pairs: invalid pair")
)

// Band is a closed interval of ideal step counts.
type Band struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// DefaultBand keeps puzzles between four and six moves.
var DefaultBand = Band{Min: 4, Max: 6}

// Contains reports Min <= steps <= Max.
func (b Band) Contains(steps int) bool { return steps >= b.Min && steps <= b.Max }

// Validate rejects empty or inverted bands.
func (b Band) Validate() error {
	if b.Min < 1 || b.Max < b.Min {
		return fmt.Errorf("%w: [%d,%d]", ErrBadBand, b.Min, b.Max)
	}
	return nil
}

// Pair is a puzzle with one of its shortest solutions.
type Pair struct {
	Start  string   `json:"start"`
	Target string   `json:"target"`
	Path   []string `json:"path"`
}

// Steps is the ideal move count.
func (p Pair) Steps() int { return len(p.Path) - 1 }

// Validate checks endpoints, adjacency along the path and the band.
func (p Pair) Validate(g *graph.Graph, band Band) error {
	if len(p.Path) < 2 || p.Path[0] != p.Start || p.Path[len(p.Path)-1] != p.Target {
		return fmt.Errorf("%w: %s->%s endpoints", ErrInvalidPair, p.Start, p.Target)
	}
	for i := 1; i < len(p.Path); i++ {
		if !g.HasEdge(p.Path[i-1], p.Path[i]) {
			return fmt.Errorf("%w: %s-%s not adjacent", ErrInvalidPair, p.Path[i-1], p.Path[i])
		}
	}
	if !band.Contains(p.Steps()) {
		return fmt.Errorf("%w: %d steps outside [%d,%d]", ErrInvalidPair, p.Steps(), band.Min, band.Max)
	}
	return nil
}

// Options tune a Precompute run. Zero values fall back to defaults.
type Options struct {
	Band Band
	// Target is how many pairs to collect; default min(500, 2n).
	Target int
	// MaxAttempts bounds sampling; default 3·Target.
	MaxAttempts int
	Rand        *rand.Rand
}

func (o Options) withDefaults(n int) Options {
	if o.Band == (Band{}) {
		o.Band = DefaultBand
	}
	if o.Target <= 0 {
		o.Target = min(500, 2*n)
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3 * o.Target
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Precompute samples distinct word pairs from ws and keeps those whose
// shortest ladder length lies in the band. Paths found along the way land
// in f's cache. It stops at Target pairs, after MaxAttempts samples, or when
// ctx is done (returning ctx.Err with the pairs found so far).
func Precompute(ctx context.Context, f *ladder.Finder, ws *words.Set, opts Options) ([]Pair, error) {
	list := ws.Words()
	if len(list) < 2 {
		return nil, nil
	}
	opts = opts.withDefaults(len(list))
	if err := opts.Band.Validate(); err != nil {
		return nil, err
	}

	out := make([]Pair, 0, opts.Target)
	seen := make(map[[2]string]struct{}, opts.Target)
	for attempt := 0; attempt < opts.MaxAttempts && len(out) < opts.Target; attempt++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		i := opts.Rand.Intn(len(list))
		j := opts.Rand.Intn(len(list) - 1)
		if j >= i {
			j++
		}
		key := [2]string{list[i], list[j]}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		path, ok := f.FindPath(ctx, key[0], key[1])
		if !ok || !opts.Band.Contains(len(path)-1) {
			continue
		}
		out = append(out, Pair{Start: key[0], Target: key[1], Path: append([]string(nil), path...)})
	}
	return out, nil
}
