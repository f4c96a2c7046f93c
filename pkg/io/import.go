// Package io reads and writes the JSON document format carrying a task
// graph and its weights in one payload.
//
// This is the programmatic input shape: the HTTP API accepts it as a
// request body, and the CLI accepts it as an alternative to separate dot
// and CSV files. The document is a plain transport struct; structural
// validation happens in pkg/source and pkg/weights during normalization.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/critpathlabs/critpath/pkg/errors"
)

// Task describes one task in a JSON document. Weight is optional; a task
// without a weight is only schedulable under the allow-missing policy.
type Task struct {
	ID     string `json:"id"`
	Weight *int   `json:"weight,omitempty"`
}

// Edge describes one dependency in a JSON document.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Document is a task graph plus weights in one JSON payload:
//
//	{
//	  "tasks": [{"id": "a", "weight": 2}, {"id": "b", "weight": 3}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Document satisfies the source.Graph capability interface, so it can be
// normalized like any other graph representation.
type Document struct {
	Tasks []Task `json:"tasks"`
	Edges []Edge `json:"edges"`
}

// TaskIDs returns the declared task identifiers in document order.
func (d *Document) TaskIDs() []string {
	ids := make([]string, len(d.Tasks))
	for i, t := range d.Tasks {
		ids[i] = t.ID
	}
	return ids
}

// EdgeList returns the (predecessor, successor) pairs in document order.
func (d *Document) EdgeList() [][2]string {
	edges := make([][2]string, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = [2]string{e.From, e.To}
	}
	return edges
}

// Weights returns the weight mapping for tasks that declare one.
// Tasks without a weight field are simply absent from the map; whether
// that is an error is the weight resolver's policy decision.
func (d *Document) Weights() map[string]int {
	m := make(map[string]int, len(d.Tasks))
	for _, t := range d.Tasks {
		if t.Weight != nil {
			m[t.ID] = *t.Weight
		}
	}
	return m
}

// ReadJSON decodes a Document from r.
// Returns an INVALID_FORMAT error for malformed JSON. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph document")
	}
	return &doc, nil
}

// ImportJSON reads a JSON document file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
