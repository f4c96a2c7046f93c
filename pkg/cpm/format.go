package cpm

import "github.com/critpathlabs/critpath/pkg/dag"

// EdgeWeight pairs a critical edge with its weight. The weight of an edge
// is the duration of its successor task: the forward pass accrues each
// task's own weight at its finish end, so a path's edge weights plus the
// source task's duration sum to the path length.
type EdgeWeight struct {
	Edge   dag.Edge
	Weight int
}

// EdgeWeights returns the critical edges mapped to their weights.
// This is the primary external shape of the analysis, consumed by the CLI
// printer and the rendering adapter alongside [Result.TotalDuration].
func (r *Result) EdgeWeights() map[dag.Edge]int {
	m := make(map[dag.Edge]int, len(r.CriticalEdges))
	for _, e := range r.CriticalEdges {
		m[e] = r.Tasks[e.To].EF - r.Tasks[e.To].ES
	}
	return m
}

// CriticalEdgeList returns the critical edges with weights in the engine's
// deterministic order, for consumers that need stable iteration (CLI output,
// JSON encoding).
func (r *Result) CriticalEdgeList() []EdgeWeight {
	list := make([]EdgeWeight, len(r.CriticalEdges))
	for i, e := range r.CriticalEdges {
		list[i] = EdgeWeight{Edge: e, Weight: r.Tasks[e.To].EF - r.Tasks[e.To].ES}
	}
	return list
}
