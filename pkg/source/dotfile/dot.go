// Package dotfile reads Graphviz dot digraph files into a representation
// the source package can normalize.
//
// Only node and edge statements are interpreted; attribute lists, attribute
// assignments, and subgraph machinery are skipped. That matches the input
// contract of the analysis pipeline, where a dot file carries task identity
// and dependency structure and nothing else.
package dotfile

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/critpathlabs/critpath/pkg/errors"
)

// Digraph is a parsed dot digraph reduced to task identity and dependency
// structure. It satisfies the source.Graph capability interface.
type Digraph struct {
	Nodes []string    // declaration order, deduplicated
	Edges [][2]string // statement order, duplicates preserved (source dedups)

	seen map[string]bool
}

// TaskIDs returns the declared node identifiers in declaration order.
func (d *Digraph) TaskIDs() []string { return d.Nodes }

// EdgeList returns the (predecessor, successor) pairs in statement order.
func (d *Digraph) EdgeList() [][2]string { return d.Edges }

func (d *Digraph) addNode(id string) {
	if d.seen[id] {
		return
	}
	d.seen[id] = true
	d.Nodes = append(d.Nodes, id)
}

var (
	lineCommentRe  = regexp.MustCompile(`(?m)(//|#).*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	attrListRe     = regexp.MustCompile(`\[[^\]]*\]`)
	headerRe       = regexp.MustCompile(`(?is)^\s*(strict\s+)?(digraph|graph)\b[^{]*\{`)
)

// statement keywords that declare defaults rather than nodes.
var keywords = map[string]bool{"node": true, "edge": true, "graph": true, "subgraph": true}

// Read parses a dot digraph from r.
//
// Returns an INVALID_FORMAT error if the input is not a digraph (undirected
// graphs cannot express task dependencies) or the braces are malformed.
// Structural validation of the resulting graph (cycles, self-loops, empty
// graph) is left to source.FromGraph.
func Read(r io.Reader) (*Digraph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dot input: %w", err)
	}

	text := blockCommentRe.ReplaceAllString(string(raw), " ")
	text = lineCommentRe.ReplaceAllString(text, "")

	header := headerRe.FindStringSubmatch(text)
	if header == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "input is not a dot graph")
	}
	if strings.EqualFold(strings.TrimSpace(header[2]), "graph") {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "input is an undirected graph; a digraph is required")
	}

	open := strings.Index(text, "{")
	closing := strings.LastIndex(text, "}")
	if closing < open {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unbalanced braces in dot input")
	}
	body := text[open+1 : closing]
	body = attrListRe.ReplaceAllString(body, " ")

	d := &Digraph{seen: make(map[string]bool)}
	for _, stmt := range splitStatements(body) {
		if err := d.parseStatement(stmt); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ImportFile reads and parses the dot file at path.
func ImportFile(path string) (*Digraph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// splitStatements breaks the graph body on semicolons and newlines.
// Dot permits either as a statement terminator.
func splitStatements(body string) []string {
	var stmts []string
	for _, s := range strings.FieldsFunc(body, func(r rune) bool { return r == ';' || r == '\n' || r == '\r' }) {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (d *Digraph) parseStatement(stmt string) error {
	// Attribute assignments (rankdir=TB) carry no task identity.
	if strings.Contains(stmt, "=") {
		return nil
	}

	if strings.Contains(stmt, "->") {
		// Edge chains: a -> b -> c declares edges (a,b) and (b,c).
		parts := strings.Split(stmt, "->")
		chain := make([]string, 0, len(parts))
		for _, p := range parts {
			id := unquote(strings.TrimSpace(p))
			if id == "" {
				return errors.New(errors.ErrCodeInvalidFormat, "edge statement %q has an empty endpoint", stmt)
			}
			chain = append(chain, id)
		}
		for i, id := range chain {
			d.addNode(id)
			if i > 0 {
				d.Edges = append(d.Edges, [2]string{chain[i-1], id})
			}
		}
		return nil
	}

	id := unquote(strings.TrimSpace(stmt))
	if id == "" || keywords[strings.ToLower(id)] {
		return nil
	}
	if len(strings.Fields(id)) > 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot parse dot statement %q", stmt)
	}
	d.addNode(id)
	return nil
}

// unquote strips surrounding double quotes and resolves the two escape
// sequences dot defines inside quoted IDs.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}
