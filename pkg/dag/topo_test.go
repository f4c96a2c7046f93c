package dag

import (
	"errors"
	"slices"
	"testing"
)

func buildDiamond(t *testing.T) *DAG {
	t.Helper()
	g := New()
	for _, id := range []string{"d", "c", "b", "a"} {
		g.AddTask(id)
	}
	g.AddDependency(Edge{From: "a", To: "b"})
	g.AddDependency(Edge{From: "a", To: "c"})
	g.AddDependency(Edge{From: "b", To: "d"})
	g.AddDependency(Edge{From: "c", To: "d"})
	return g
}

func TestTopoSort_Diamond(t *testing.T) {
	g := buildDiamond(t)

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}

	// Ready-set ties are broken lexicographically, so the order is exact.
	want := []string{"a", "b", "c", "d"}
	if !slices.Equal(order, want) {
		t.Errorf("TopoSort() = %v, want %v", order, want)
	}
}

func TestTopoSort_Deterministic(t *testing.T) {
	g := buildDiamond(t)

	first, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := g.TopoSort()
		if err != nil {
			t.Fatalf("TopoSort() error = %v", err)
		}
		if !slices.Equal(first, again) {
			t.Fatalf("TopoSort() = %v on run %d, want %v", again, i, first)
		}
	}
}

func TestTopoSort_Cycle(t *testing.T) {
	g := New()
	g.AddTask("a")
	g.AddTask("b")
	g.AddDependency(Edge{From: "a", To: "b"})
	g.AddDependency(Edge{From: "b", To: "a"})

	if _, err := g.TopoSort(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("TopoSort() error = %v, want ErrGraphHasCycle", err)
	}
}

func TestTopoSort_RespectsEdges(t *testing.T) {
	g := New()
	for _, id := range []string{"build", "test", "package", "deploy"} {
		g.AddTask(id)
	}
	g.AddDependency(Edge{From: "build", To: "test"})
	g.AddDependency(Edge{From: "test", To: "package"})
	g.AddDependency(Edge{From: "package", To: "deploy"})

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("TopoSort() places %s at %d, after %s at %d", e.From, pos[e.From], e.To, pos[e.To])
		}
	}
}
