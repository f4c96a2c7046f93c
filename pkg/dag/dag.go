// Package dag provides the canonical directed acyclic graph of tasks that
// the critical-path engine operates on.
//
// A DAG is a set of uniquely identified tasks plus a set of deduplicated
// directed dependency edges between them. All input representations (edge
// lists, dot files, JSON graphs, foreign graph objects) are normalized into
// this one type by pkg/source; the engine in pkg/cpm never sees anything else.
package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidTaskID is returned by [DAG.AddTask] when the task ID is empty.
	// All tasks must have non-empty identifiers.
	ErrInvalidTaskID = errors.New("task ID must not be empty")

	// ErrUnknownPredecessor is returned by [DAG.AddDependency] when the From
	// task does not exist in the graph.
	ErrUnknownPredecessor = errors.New("unknown predecessor task")

	// ErrUnknownSuccessor is returned by [DAG.AddDependency] when the To
	// task does not exist in the graph.
	ErrUnknownSuccessor = errors.New("unknown successor task")

	// ErrSelfLoop is returned by [DAG.AddDependency] when an edge would
	// connect a task to itself. Self-loops can never be scheduled.
	ErrSelfLoop = errors.New("task cannot depend on itself")

	// ErrEmptyGraph is returned by [DAG.Validate] when the graph contains
	// no tasks. There is nothing to schedule in an empty graph.
	ErrEmptyGraph = errors.New("graph is empty")

	// ErrGraphHasCycle is returned by [DAG.Validate] and [DAG.TopoSort] when
	// a cycle is detected. A cyclic dependency network has no valid schedule.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Edge represents a directed dependency between two tasks: From must finish
// before To can start.
type Edge struct {
	From string // Predecessor task ID
	To   string // Successor task ID
}

// DAG is a directed acyclic graph of tasks keyed by string identifier.
//
// Tasks and edges are deduplicated on insertion: adding a task or edge that
// already exists is a no-op rather than an error, because the same dependency
// stated twice in an input file carries no additional meaning.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent mutation without external synchronization;
// once built it is read-only as far as the engine is concerned.
type DAG struct {
	tasks    map[string]struct{}
	order    []string            // task IDs in insertion order
	edges    []Edge              // deduplicated, insertion order
	edgeSet  map[Edge]struct{}   // dedup index over edges
	outgoing map[string][]string // taskID -> successor IDs
	incoming map[string][]string // taskID -> predecessor IDs
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		tasks:    make(map[string]struct{}),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddTask adds a task to the graph. Adding an already-present task is a
// no-op. Returns ErrInvalidTaskID if the ID is empty.
func (d *DAG) AddTask(id string) error {
	if id == "" {
		return ErrInvalidTaskID
	}
	if _, exists := d.tasks[id]; exists {
		return nil
	}
	d.tasks[id] = struct{}{}
	d.order = append(d.order, id)
	return nil
}

// AddDependency adds a directed edge between two existing tasks. Adding an
// edge that is already present is a no-op.
//
// Returns ErrSelfLoop if From == To, ErrUnknownPredecessor if the From task
// doesn't exist, or ErrUnknownSuccessor if the To task doesn't exist.
// AddDependency does not check for cycles - use Validate after building
// the graph.
func (d *DAG) AddDependency(e Edge) error {
	if e.From == e.To {
		return ErrSelfLoop
	}
	if _, ok := d.tasks[e.From]; !ok {
		return ErrUnknownPredecessor
	}
	if _, ok := d.tasks[e.To]; !ok {
		return ErrUnknownSuccessor
	}
	if _, dup := d.edgeSet[e]; dup {
		return nil
	}
	d.edgeSet[e] = struct{}{}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasTask reports whether a task with the given ID exists in the graph.
func (d *DAG) HasTask(id string) bool {
	_, ok := d.tasks[id]
	return ok
}

// HasEdge reports whether the dependency from→to exists in the graph.
func (d *DAG) HasEdge(from, to string) bool {
	_, ok := d.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Tasks returns all task IDs in insertion order.
// The returned slice is a copy and can be modified freely.
func (d *DAG) Tasks() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// TaskCount returns the number of tasks in the graph.
func (d *DAG) TaskCount() int { return len(d.tasks) }

// EdgeCount returns the number of distinct edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Successors returns the IDs of tasks that depend on this task.
// Returns nil if the task has no successors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (d *DAG) Successors(id string) []string { return d.outgoing[id] }

// Predecessors returns the IDs of tasks this task depends on.
// Returns nil if the task has no predecessors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (d *DAG) Predecessors(id string) []string { return d.incoming[id] }

// InDegree returns the number of incoming edges to the task.
// Returns 0 if the task doesn't exist.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// OutDegree returns the number of outgoing edges from the task.
// Returns 0 if the task doesn't exist.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// Sources returns the IDs of tasks with no predecessors, sorted.
// A non-empty acyclic graph always has at least one source.
func (d *DAG) Sources() []string {
	var sources []string
	for id := range d.tasks {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	slices.Sort(sources)
	return sources
}

// Sinks returns the IDs of tasks with no successors, sorted.
// A non-empty acyclic graph always has at least one sink.
func (d *DAG) Sinks() []string {
	var sinks []string
	for id := range d.tasks {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	slices.Sort(sinks)
	return sinks
}

// Validate checks graph integrity and returns nil if valid.
// It verifies two constraints:
//
//  1. The graph is non-empty (ErrEmptyGraph)
//  2. The graph is acyclic (ErrGraphHasCycle)
//
// Self-loops and dangling edge endpoints are rejected at insertion time by
// AddDependency, so Validate does not re-check them. Use this before handing
// the graph to the scheduling engine, which assumes a valid DAG.
//
// Cycle detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring.
func (d *DAG) Validate() error {
	if len(d.tasks) == 0 {
		return ErrEmptyGraph
	}
	return d.detectCycles()
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.tasks))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, succ := range d.outgoing[id] {
			switch color[succ] {
			case white:
				dfs(succ)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
