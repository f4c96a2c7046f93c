package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/critpathlabs/critpath/pkg/dag"
)

// NewDocument builds a Document from a normalized DAG and its resolved
// weight map. The result round-trips through [ReadJSON].
func NewDocument(g *dag.DAG, weights map[string]int) *Document {
	doc := &Document{
		Tasks: make([]Task, 0, g.TaskCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Tasks() {
		t := Task{ID: id}
		if w, ok := weights[id]; ok {
			weight := w
			t.Weight = &weight
		}
		doc.Tasks = append(doc.Tasks, t)
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To})
	}
	return doc
}

// WriteJSON encodes a Document as indented JSON and writes it to w.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a Document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
