package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/critpathlabs/critpath/pkg/errors"
	"github.com/critpathlabs/critpath/pkg/source"
)

const diamondDoc = `{
  "tasks": [
    {"id": "a", "weight": 1},
    {"id": "b", "weight": 5},
    {"id": "c", "weight": 2},
    {"id": "d", "weight": 1}
  ],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "a", "to": "c"},
    {"from": "b", "to": "d"},
    {"from": "c", "to": "d"}
  ]
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(diamondDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	wantIDs := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(doc.TaskIDs(), wantIDs) {
		t.Errorf("TaskIDs() = %v, want %v", doc.TaskIDs(), wantIDs)
	}
	if len(doc.EdgeList()) != 4 {
		t.Errorf("len(EdgeList()) = %d, want 4", len(doc.EdgeList()))
	}

	wantWeights := map[string]int{"a": 1, "b": 5, "c": 2, "d": 1}
	if !reflect.DeepEqual(doc.Weights(), wantWeights) {
		t.Errorf("Weights() = %v, want %v", doc.Weights(), wantWeights)
	}
}

func TestReadJSON_OptionalWeights(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{
	  "tasks": [{"id": "a", "weight": 2}, {"id": "b"}],
	  "edges": [{"from": "a", "to": "b"}]
	}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	want := map[string]int{"a": 2}
	if !reflect.DeepEqual(doc.Weights(), want) {
		t.Errorf("Weights() = %v, want %v", doc.Weights(), want)
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"tasks": [`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(truncated) = %v, want INVALID_FORMAT", err)
	}
}

func TestDocument_NormalizesAsGraph(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(diamondDoc))
	if err != nil {
		t.Fatal(err)
	}

	g, err := source.FromGraph(doc)
	if err != nil {
		t.Fatalf("FromGraph() error = %v", err)
	}
	if g.TaskCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("got %d tasks / %d edges, want 4 / 4", g.TaskCount(), g.EdgeCount())
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(diamondDoc))
	if err != nil {
		t.Fatal(err)
	}
	g, err := source.FromGraph(doc)
	if err != nil {
		t.Fatal(err)
	}

	out := NewDocument(g, doc.Weights())

	var buf bytes.Buffer
	if err := WriteJSON(out, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(round trip) error = %v", err)
	}
	if !reflect.DeepEqual(back.TaskIDs(), doc.TaskIDs()) {
		t.Errorf("TaskIDs = %v, want %v", back.TaskIDs(), doc.TaskIDs())
	}
	if !reflect.DeepEqual(back.Weights(), doc.Weights()) {
		t.Errorf("Weights = %v, want %v", back.Weights(), doc.Weights())
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	doc := &Document{
		Tasks: []Task{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("ImportJSON() = %+v, want %+v", back, doc)
	}
}

func TestImportJSON_Missing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
