package cpm

import "github.com/critpathlabs/critpath/pkg/dag"

// Schedule holds the derived scheduling quantities for a single task.
// Slack is only meaningful once both passes have completed; Compute never
// returns a partially filled schedule.
type Schedule struct {
	TaskID string
	ES, EF int // earliest start/finish
	LS, LF int // latest start/finish
	Slack  int // LS - ES; zero marks the task as critical

	Critical bool
}

// Result holds the complete critical-path analysis for one (graph, weights)
// input. It is computed fresh on every call and never mutated afterwards.
type Result struct {
	Tasks     map[string]*Schedule
	TopoOrder []string // deterministic topological order used by the passes

	// TotalDuration is the project duration: the maximum earliest finish
	// over all sink tasks.
	TotalDuration int

	// CriticalTasks are the zero-slack task IDs in topological order.
	CriticalTasks []string

	// CriticalEdges are the dependencies whose endpoints are both critical
	// and adjacent in the realized schedule (EF of the predecessor equals
	// ES of the successor). Together they form every maximal zero-slack
	// path from a source to a sink. Ordered by the topological positions
	// of their endpoints, so identical inputs yield identical listings.
	CriticalEdges []dag.Edge
}

// Schedule returns the schedule entry for the given task, or nil if the
// task was not part of the analyzed graph.
func (r *Result) Schedule(id string) *Schedule { return r.Tasks[id] }
