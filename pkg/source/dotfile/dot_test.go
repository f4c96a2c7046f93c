package dotfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/critpathlabs/critpath/pkg/errors"
)

func parse(t *testing.T, input string) *Digraph {
	t.Helper()
	d, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return d
}

func TestRead_NodesAndEdges(t *testing.T) {
	d := parse(t, `digraph deps {
		a;
		b;
		a -> b;
		b -> c;
	}`)

	wantNodes := []string{"a", "b", "c"}
	if !reflect.DeepEqual(d.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", d.Nodes, wantNodes)
	}

	wantEdges := [][2]string{{"a", "b"}, {"b", "c"}}
	if !reflect.DeepEqual(d.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", d.Edges, wantEdges)
	}
}

func TestRead_EdgeChain(t *testing.T) {
	d := parse(t, `digraph { a -> b -> c }`)

	wantEdges := [][2]string{{"a", "b"}, {"b", "c"}}
	if !reflect.DeepEqual(d.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", d.Edges, wantEdges)
	}
}

func TestRead_QuotedIdentifiers(t *testing.T) {
	d := parse(t, `digraph { "build frontend" -> "deploy \"prod\"" }`)

	wantEdges := [][2]string{{"build frontend", `deploy "prod"`}}
	if !reflect.DeepEqual(d.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", d.Edges, wantEdges)
	}
}

func TestRead_StripsCommentsAndAttributes(t *testing.T) {
	d := parse(t, `// tooling header
	digraph {
		rankdir=LR;
		node [shape=box];
		a -> b [label="3", color=red]; # inline comment
		/* block
		   comment */
		b -> c;
	}`)

	wantEdges := [][2]string{{"a", "b"}, {"b", "c"}}
	if !reflect.DeepEqual(d.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", d.Edges, wantEdges)
	}
}

func TestRead_SemicolonSeparatedStatements(t *testing.T) {
	d := parse(t, `digraph { a -> b; c; b -> c }`)

	wantNodes := []string{"a", "b", "c"}
	if !reflect.DeepEqual(d.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", d.Nodes, wantNodes)
	}
}

func TestRead_RejectsUndirected(t *testing.T) {
	_, err := Read(strings.NewReader(`graph { a -- b }`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read(graph) = %v, want INVALID_FORMAT", err)
	}
}

func TestRead_RejectsNonDot(t *testing.T) {
	_, err := Read(strings.NewReader(`{"tasks": []}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read(json) = %v, want INVALID_FORMAT", err)
	}
}

func TestRead_StrictDigraph(t *testing.T) {
	d := parse(t, `strict digraph G { a -> b }`)

	if len(d.Edges) != 1 {
		t.Errorf("len(Edges) = %d, want 1", len(d.Edges))
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := os.WriteFile(path, []byte(`digraph { a -> b }`), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if len(d.Edges) != 1 {
		t.Errorf("len(Edges) = %d, want 1", len(d.Edges))
	}
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.dot"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
