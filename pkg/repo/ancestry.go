package repo

import (
	"fmt"

	"github.com/odvcencio/wit/pkg/object"
)

// TraceEntry is one edge of an ancestor trace: Commit has Parent as one of
// its parents and sits Depth first-parent steps below the trace start. A
// root commit contributes an entry whose Parent is object.NoParent.
type TraceEntry struct {
	Commit object.ID `json:"commit" yaml:"commit"`
	Parent object.ID `json:"parent" yaml:"parent"`
	Depth  int       `json:"depth" yaml:"depth"`
}

const maxAncestorTraceEntries = 1_000_000

// ancestorTraceLimit lets tests tighten the traversal bound without
// affecting the production default.
var ancestorTraceLimit = maxAncestorTraceEntries

func traceLimit() int {
	if ancestorTraceLimit <= 0 || ancestorTraceLimit > maxAncestorTraceEntries {
		return maxAncestorTraceEntries
	}
	return ancestorTraceLimit
}

type traceFrame struct {
	id    object.ID
	depth int
	// first is set while the second-parent subtrace of id is being
	// walked; the (id, first) edge is emitted once it is done.
	first   object.ID
	resumed bool
}

// AncestorTrace walks the history of start. Along the first-parent chain
// each commit emits (commit, first, depth) and depth grows by one per
// step. A merge commit first emits (commit, second, depth) followed by the
// complete trace of second starting at the same depth, and only then its
// first-parent edge. Commits reachable along several paths appear once per
// path.
func (r *Repo) AncestorTrace(start object.ID) ([]TraceEntry, error) {
	limit := traceLimit()
	parentsOf := make(map[object.ID][]object.ID)

	var trace []TraceEntry
	stack := []traceFrame{{id: start}}
	for len(stack) > 0 {
		if len(trace) > limit {
			return nil, fmt.Errorf("ancestor trace %s: exceeded maximum of %d entries", start.Short(), limit)
		}

		top := &stack[len(stack)-1]
		if top.resumed {
			trace = append(trace, TraceEntry{Commit: top.id, Parent: top.first, Depth: top.depth})
			top.id, top.first, top.resumed = top.first, "", false
			top.depth++
			continue
		}
		if top.id.IsNone() {
			stack = stack[:len(stack)-1]
			continue
		}

		parents, ok := parentsOf[top.id]
		if !ok {
			var err error
			parents, err = r.Store.ReadParents(top.id)
			if err != nil {
				return nil, fmt.Errorf("ancestor trace: %w", err)
			}
			parentsOf[top.id] = parents
		}

		if len(parents) > 1 {
			trace = append(trace, TraceEntry{Commit: top.id, Parent: parents[1], Depth: top.depth})
			top.first, top.resumed = parents[0], true
			stack = append(stack, traceFrame{id: parents[1], depth: top.depth})
			continue
		}
		trace = append(trace, TraceEntry{Commit: top.id, Parent: parents[0], Depth: top.depth})
		top.id = parents[0]
		top.depth++
	}
	return trace, nil
}

// FindSharedAncestor returns the commit present in the traces of both a
// and b with the smallest combined depth. Ties go to the commit met first
// in a's trace.
func (r *Repo) FindSharedAncestor(a, b object.ID) (object.ID, error) {
	traceA, err := r.AncestorTrace(a)
	if err != nil {
		return "", fmt.Errorf("find shared ancestor: %w", err)
	}
	traceB, err := r.AncestorTrace(b)
	if err != nil {
		return "", fmt.Errorf("find shared ancestor: %w", err)
	}

	minDepthB := make(map[object.ID]int, len(traceB))
	for _, e := range traceB {
		if d, ok := minDepthB[e.Commit]; !ok || e.Depth < d {
			minDepthB[e.Commit] = e.Depth
		}
	}

	var best object.ID
	bestCost := -1
	for _, e := range traceA {
		db, ok := minDepthB[e.Commit]
		if !ok {
			continue
		}
		if cost := e.Depth + db; bestCost < 0 || cost < bestCost {
			best, bestCost = e.Commit, cost
		}
	}
	if bestCost < 0 {
		return "", fmt.Errorf("find shared ancestor of %s and %s: %w", a.Short(), b.Short(), ErrNoSharedAncestor)
	}

	r.log.Debug().
		Str("a", string(a)).
		Str("b", string(b)).
		Str("ancestor", string(best)).
		Int("cost", bestCost).
		Msg("shared ancestor")
	return best, nil
}
