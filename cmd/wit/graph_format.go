package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/wit/pkg/object"
	"github.com/odvcencio/wit/pkg/repo"
)

type graphRenderer func(w io.Writer, g *repo.Graph) error

var graphRenderers = map[string]graphRenderer{
	"text": renderGraphText,
	"json": renderGraphJSON,
	"yaml": renderGraphYAML,
	"dot":  renderGraphDOT,
}

func sortedRefNames(g *repo.Graph) []string {
	names := make([]string, 0, len(g.Refs))
	for name := range g.Refs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parentLabel(id object.ID) string {
	if id.IsNone() {
		return string(object.NoParent)
	}
	return id.Short()
}

func renderGraphText(w io.Writer, g *repo.Graph) error {
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "%*s%s -> %s\n", 2*e.Depth, "", e.Commit.Short(), parentLabel(e.Parent)); err != nil {
			return err
		}
	}
	for _, name := range sortedRefNames(g) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, g.Refs[name].Short()); err != nil {
			return err
		}
	}
	return nil
}

func renderGraphJSON(w io.Writer, g *repo.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

func renderGraphYAML(w io.Writer, g *repo.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return err
	}
	return enc.Close()
}

// renderGraphDOT writes Graphviz source: commits as short-labelled circles
// pointing at their parents, and each ref as an invisible node with a
// labelled edge to its commit.
func renderGraphDOT(w io.Writer, g *repo.Graph) error {
	var b []byte
	b = append(b, "digraph wit {\n  rankdir=RL;\n  node [style=filled, color=aqua, shape=circle];\n  edge [style=bold];\n"...)
	for _, id := range g.Commits() {
		b = fmt.Appendf(b, "  %q [label=%q];\n", id, id.Short())
	}
	seen := make(map[[2]object.ID]bool)
	for _, e := range g.Edges {
		edge := [2]object.ID{e.Commit, e.Parent}
		if e.Parent.IsNone() || seen[edge] {
			continue
		}
		seen[edge] = true
		b = fmt.Appendf(b, "  %q -> %q;\n", e.Commit, e.Parent)
	}
	for _, name := range sortedRefNames(g) {
		node := "ref:" + name
		b = fmt.Appendf(b, "  %q [label=\"\", style=invis];\n", node)
		b = fmt.Appendf(b, "  %q -> %q [label=%q];\n", node, g.Refs[name], name)
	}
	b = append(b, "}\n"...)
	_, err := w.Write(b)
	return err
}
