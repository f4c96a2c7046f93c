// Package cpm implements the critical path method over a weighted task DAG.
//
// The analysis runs two linear passes over a deterministic topological
// ordering: a forward pass computing earliest start/finish times, and a
// backward pass computing latest start/finish times. Slack falls out as
// LS - ES, and the zero-slack tasks and their schedule-adjacent edges form
// the critical path(s) - the chains whose delay delays the whole project.
//
// The engine trusts its inputs: the graph must come from pkg/source and the
// weight map from pkg/weights, which validate acyclicity and weight
// completeness up front. Compute does not re-validate; a contract violation
// surfaces as an INTERNAL_ERROR.
package cpm

import (
	"sort"

	"github.com/critpathlabs/critpath/pkg/dag"
	"github.com/critpathlabs/critpath/pkg/errors"
)

// Compute runs the forward and backward passes over g and returns the full
// schedule, the critical task set, the critical edges, and the total project
// duration.
//
// Preconditions (enforced upstream, not re-checked): g is a validated
// non-empty DAG, and weights contains a non-negative entry for every task
// in g. Computing twice on identical inputs yields identical results.
func Compute(g *dag.DAG, weights map[string]int) (*Result, error) {
	order, err := g.TopoSort()
	if err != nil {
		// The adapters guarantee acyclicity; reaching this is a bug.
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graph accepted by adapter has no topological order")
	}
	if len(order) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "empty topological order for a normalized graph")
	}

	result := &Result{
		Tasks:     make(map[string]*Schedule, len(order)),
		TopoOrder: order,
	}
	for _, id := range order {
		result.Tasks[id] = &Schedule{TaskID: id}
	}

	// Forward pass: ES = max EF over predecessors (0 for sources),
	// EF = ES + weight.
	for _, id := range order {
		s := result.Tasks[id]
		for _, pred := range g.Predecessors(id) {
			if ef := result.Tasks[pred].EF; ef > s.ES {
				s.ES = ef
			}
		}
		s.EF = s.ES + weights[id]
	}

	// Project duration: max EF over sinks. Every task's EF is bounded by
	// some sink's EF, so this is also the global maximum.
	for _, id := range g.Sinks() {
		if ef := result.Tasks[id].EF; ef > result.TotalDuration {
			result.TotalDuration = ef
		}
	}

	// Backward pass in reverse topological order: sinks finish no later
	// than the project itself; everything else finishes no later than its
	// earliest-starting successor may start.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		s := result.Tasks[id]

		if g.OutDegree(id) == 0 {
			s.LF = result.TotalDuration
		} else {
			s.LF = result.TotalDuration
			for _, succ := range g.Successors(id) {
				if ls := result.Tasks[succ].LS; ls < s.LF {
					s.LF = ls
				}
			}
		}
		s.LS = s.LF - weights[id]
		s.Slack = s.LS - s.ES
		s.Critical = s.Slack == 0
	}

	for _, id := range order {
		if result.Tasks[id].Critical {
			result.CriticalTasks = append(result.CriticalTasks, id)
		}
	}

	result.CriticalEdges = criticalEdges(g, result)

	if err := verify(g, result); err != nil {
		return nil, err
	}
	return result, nil
}

// criticalEdges extracts the dependencies on the critical path(s): both
// endpoints have zero slack AND the chain is contiguous in time. Two
// zero-slack tasks whose realized schedules are not adjacent (EF of the
// predecessor differs from ES of the successor) do not form a critical edge.
func criticalEdges(g *dag.DAG, r *Result) []dag.Edge {
	var edges []dag.Edge
	for _, e := range g.Edges() {
		u, v := r.Tasks[e.From], r.Tasks[e.To]
		if u.Critical && v.Critical && u.EF == v.ES {
			edges = append(edges, e)
		}
	}

	pos := make(map[string]int, len(r.TopoOrder))
	for i, id := range r.TopoOrder {
		pos[id] = i
	}
	sort.Slice(edges, func(i, j int) bool {
		if pos[edges[i].From] != pos[edges[j].From] {
			return pos[edges[i].From] < pos[edges[j].From]
		}
		return pos[edges[i].To] < pos[edges[j].To]
	})
	return edges
}

// verify checks the structural invariants every valid analysis satisfies:
// slack is non-negative, critical chains run all the way to a sink, and a
// critical sink realizes the project duration. A violation means the engine
// or an adapter is broken, so it surfaces as INTERNAL_ERROR rather than a
// user-facing validation failure.
func verify(g *dag.DAG, r *Result) error {
	hasCriticalOut := make(map[string]bool, len(r.CriticalTasks))
	for _, e := range r.CriticalEdges {
		hasCriticalOut[e.From] = true
	}

	for _, id := range r.TopoOrder {
		s := r.Tasks[id]
		if s.Slack < 0 {
			return errors.New(errors.ErrCodeInternal, "task %s has negative slack %d", id, s.Slack)
		}
		if !s.Critical {
			continue
		}
		if g.OutDegree(id) == 0 {
			if s.EF != r.TotalDuration {
				return errors.New(errors.ErrCodeInternal,
					"critical sink %s finishes at %d, want project duration %d", id, s.EF, r.TotalDuration)
			}
		} else if !hasCriticalOut[id] {
			return errors.New(errors.ErrCodeInternal,
				"critical task %s has no outgoing critical edge", id)
		}
	}
	return nil
}
