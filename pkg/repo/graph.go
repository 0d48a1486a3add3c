package repo

import (
	"fmt"

	"github.com/odvcencio/wit/pkg/object"
)

// Graph is the commit graph handed to external renderers: the edges of the
// history plus the references pointing into it.
type Graph struct {
	Head  object.ID            `json:"head" yaml:"head"`
	Edges []TraceEntry         `json:"edges" yaml:"edges"`
	Refs  map[string]object.ID `json:"refs" yaml:"refs"`
}

// Commits returns every commit named by an edge, in first-seen order.
func (g *Graph) Commits() []object.ID {
	seen := make(map[object.ID]bool)
	var ids []object.ID
	add := func(id object.ID) {
		if !id.IsNone() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range g.Edges {
		add(e.Commit)
		add(e.Parent)
	}
	return ids
}

// Graph builds the commit graph. With all unset it is the ancestor trace of
// HEAD; with all set every stored commit contributes its parent edges at
// depth 0. Refs holds HEAD and every branch whose commit is in the graph.
func (r *Repo) Graph(all bool) (*Graph, error) {
	refs, err := r.ReadRefs()
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	if refs.Head.IsNone() {
		return nil, fmt.Errorf("graph: %w", ErrNoCommitsYet)
	}

	g := &Graph{Head: refs.Head, Refs: make(map[string]object.ID)}
	if all {
		ids, err := r.Store.List()
		if err != nil {
			return nil, fmt.Errorf("graph: %w", err)
		}
		for _, id := range ids {
			parents, err := r.Store.ReadParents(id)
			if err != nil {
				return nil, fmt.Errorf("graph: %w", err)
			}
			if len(parents) > 1 {
				g.Edges = append(g.Edges, TraceEntry{Commit: id, Parent: parents[1]})
			}
			g.Edges = append(g.Edges, TraceEntry{Commit: id, Parent: parents[0]})
		}
	} else {
		g.Edges, err = r.AncestorTrace(refs.Head)
		if err != nil {
			return nil, fmt.Errorf("graph: %w", err)
		}
	}

	inGraph := make(map[object.ID]bool)
	for _, e := range g.Edges {
		inGraph[e.Commit] = true
	}
	g.Refs[headRef] = refs.Head
	for name, id := range refs.Branches {
		if inGraph[id] {
			g.Refs[name] = id
		}
	}
	return g, nil
}
