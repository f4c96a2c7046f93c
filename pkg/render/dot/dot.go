// Package dot renders an analyzed task graph as a Graphviz diagram with the
// critical path visually distinguished.
//
// The rendering contract is intentionally narrow: the adapter needs the
// graph, the weight map, and the critical edge set - nothing from the
// engine's internals. Critical edges are drawn red and bold, all others
// blue, and every edge is labeled with its weight (the successor task's
// duration).
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/critpathlabs/critpath/pkg/dag"
)

const (
	edgeColorDefault  = "blue"
	edgeColorCritical = "red"
)

// Options configures diagram generation.
type Options struct {
	// Label is the graph title, rendered below the diagram. Empty means
	// no title.
	Label string
}

// ToDOT converts an analyzed graph to Graphviz DOT format. Critical edges
// (per the criticalEdges set) are highlighted; weights label each edge with
// the successor task's duration.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *dag.DAG, weights map[string]int, criticalEdges map[dag.Edge]int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph CriticalPath {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	if opts.Label != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Label)
	}
	buf.WriteString("\n")

	for _, id := range g.Tasks() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmt.Sprintf("%s (%d)", id, weights[id]))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		color := edgeColorDefault
		style := ""
		if _, critical := criticalEdges[e]; critical {
			color = edgeColorCritical
			style = ", penwidth=2.0"
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\", color=%s%s];\n",
			e.From, e.To, weights[e.To], color, style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the diagram scales from
// origin. Graphviz emits translated viewBoxes that break embedding.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
