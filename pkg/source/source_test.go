package source

import (
	"testing"

	"github.com/critpathlabs/critpath/pkg/errors"
)

type stubGraph struct {
	tasks []string
	edges [][2]string
}

func (s *stubGraph) TaskIDs() []string     { return s.tasks }
func (s *stubGraph) EdgeList() [][2]string { return s.edges }

func TestFromEdges_Chain(t *testing.T) {
	g, err := FromEdges([][2]string{{"a", "b"}, {"b", "c"}})
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}

	if g.TaskCount() != 3 {
		t.Errorf("TaskCount() = %d, want 3", g.TaskCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestFromEdges_Deduplicates(t *testing.T) {
	g, err := FromEdges([][2]string{{"a", "b"}, {"a", "b"}, {"a", "b"}})
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}

	if g.TaskCount() != 2 {
		t.Errorf("TaskCount() = %d, want 2", g.TaskCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestFromEdges_Empty(t *testing.T) {
	_, err := FromEdges(nil)
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("FromEdges(nil) = %v, want MALFORMED_GRAPH", err)
	}
}

func TestFromEdges_SelfLoop(t *testing.T) {
	_, err := FromEdges([][2]string{{"a", "a"}})
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("FromEdges(a->a) = %v, want MALFORMED_GRAPH", err)
	}
}

func TestFromEdges_Cycle(t *testing.T) {
	_, err := FromEdges([][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("FromEdges(cycle) = %v, want MALFORMED_GRAPH", err)
	}
}

func TestFromGraph_PreservesIsolatedTasks(t *testing.T) {
	src := &stubGraph{
		tasks: []string{"a", "b", "lonely"},
		edges: [][2]string{{"a", "b"}},
	}

	g, err := FromGraph(src)
	if err != nil {
		t.Fatalf("FromGraph() error = %v", err)
	}

	if !g.HasTask("lonely") {
		t.Error("HasTask(lonely) = false, want true")
	}
	if g.TaskCount() != 3 {
		t.Errorf("TaskCount() = %d, want 3", g.TaskCount())
	}
}

func TestFromGraph_UnknownEdgeEndpoint(t *testing.T) {
	src := &stubGraph{
		tasks: []string{"a"},
		edges: [][2]string{{"a", "ghost"}},
	}

	_, err := FromGraph(src)
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("FromGraph() = %v, want MALFORMED_GRAPH", err)
	}
}

func TestFromGraph_EmptyTaskID(t *testing.T) {
	src := &stubGraph{tasks: []string{""}}

	_, err := FromGraph(src)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("FromGraph() = %v, want INVALID_INPUT", err)
	}
}
