package ladder

import (
	"context"

	"github.com/robalobadob/wordladder/internal/graph"
)

// walker holds the mutable state of one breadth-first search.
type walker struct {
	ctx    context.Context
	g      *graph.Graph
	start  string
	end    string
	queue  []string
	parent map[string]string
}

func newWalker(ctx context.Context, g *graph.Graph, start, end string) *walker {
	return &walker{
		ctx:    ctx,
		g:      g,
		start:  start,
		end:    end,
		queue:  make([]string, 0, 64),
		parent: map[string]string{start: ""},
	}
}

// run expands the frontier level by level. end is recorded the first time it
// is discovered; on an unweighted graph that discovery is at minimum depth.
func (w *walker) run() ([]string, bool) {
	w.queue = append(w.queue, w.start)
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return nil, false
		default:
		}

		cur := w.queue[0]
		w.queue = w.queue[1:]
		for _, nbr := range w.g.Neighbors(cur) {
			if _, seen := w.parent[nbr]; seen {
				continue
			}
			w.parent[nbr] = cur
			if nbr == w.end {
				return w.pathTo(nbr), true
			}
			w.queue = append(w.queue, nbr)
		}
	}
	return nil, false
}

// pathTo walks parent links back to start and reverses them.
func (w *walker) pathTo(dest string) []string {
	var path []string
	for cur := dest; cur != ""; cur = w.parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
