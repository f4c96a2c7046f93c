// Package source normalizes the supported graph input representations into
// the canonical [dag.DAG] consumed by the critical-path engine.
//
// Three representations are accepted:
//   - an edge list of (predecessor, successor) pairs ([FromEdges])
//   - any type satisfying the [Graph] capability interface ([FromGraph])
//   - a parsed dot digraph (the dotfile subpackage, which feeds FromEdges)
//
// Whatever the representation, the result passes through the same validation:
// a normalized graph is non-empty, free of self-loops and duplicate edges,
// and acyclic. The engine never branches on where a graph came from.
package source

import (
	stderrors "errors"

	"github.com/critpathlabs/critpath/pkg/dag"
	"github.com/critpathlabs/critpath/pkg/errors"
)

// Graph is the capability set a foreign graph representation must expose to
// be normalized: enumerate tasks and enumerate directed edges. Edge pairs
// are (predecessor, successor).
type Graph interface {
	TaskIDs() []string
	EdgeList() [][2]string
}

// FromEdges builds a validated DAG from an edge list. Task IDs are collected
// from the edge endpoints, and both nodes and edges are deduplicated.
//
// Returns a MALFORMED_GRAPH error if the list is empty, contains a
// self-loop, or the resulting graph is cyclic.
func FromEdges(edges [][2]string) (*dag.DAG, error) {
	g := dag.New()
	for _, e := range edges {
		if err := addEdge(g, e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return finish(g)
}

// FromGraph builds a validated DAG from any representation satisfying the
// [Graph] interface. Tasks without edges are preserved; they schedule as
// independent source-and-sink tasks.
//
// Returns a MALFORMED_GRAPH error if the graph is empty, an edge references
// a task missing from TaskIDs, a self-loop is present, or the graph is
// cyclic.
func FromGraph(src Graph) (*dag.DAG, error) {
	g := dag.New()
	for _, id := range src.TaskIDs() {
		if err := errors.ValidateTaskID(id); err != nil {
			return nil, err
		}
		if err := g.AddTask(id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "task %q", id)
		}
	}
	for _, e := range src.EdgeList() {
		if !g.HasTask(e[0]) || !g.HasTask(e[1]) {
			return nil, errors.New(errors.ErrCodeMalformedGraph,
				"edge %s->%s references a task not present in the graph", e[0], e[1])
		}
		if err := g.AddDependency(dag.Edge{From: e[0], To: e[1]}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "edge %s->%s", e[0], e[1])
		}
	}
	return finish(g)
}

// addEdge registers both endpoints and the dependency itself.
func addEdge(g *dag.DAG, from, to string) error {
	for _, id := range []string{from, to} {
		if err := errors.ValidateTaskID(id); err != nil {
			return err
		}
		if err := g.AddTask(id); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedGraph, err, "task %q", id)
		}
	}
	if err := g.AddDependency(dag.Edge{From: from, To: to}); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedGraph, err, "edge %s->%s", from, to)
	}
	return nil
}

// finish runs the full structural validation that every normalized graph
// must pass, regardless of its source representation.
func finish(g *dag.DAG) (*dag.DAG, error) {
	if err := g.Validate(); err != nil {
		if stderrors.Is(err, dag.ErrEmptyGraph) {
			return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "graph has no tasks")
		}
		return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "graph validation failed")
	}
	// The scheduling passes need a total order; probe for it here so the
	// engine can trust its input unconditionally.
	if _, err := g.TopoSort(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "no topological order exists")
	}
	return g, nil
}
