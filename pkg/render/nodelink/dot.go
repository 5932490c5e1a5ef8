package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/questcanvas/pkg/quest"
	"github.com/matzehuels/questcanvas/pkg/render"
)

// maxLabelRunes truncates long option texts on edges.
const maxLabelRunes = 32

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the display name and line and option counts to node labels.
	Detailed bool
}

// ToDOT converts a quest graph to Graphviz DOT.
func ToDOT(g quest.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := ""
		if l := edgeLabel(g, e); l != "" {
			attrs = " [label=" + quote(l) + "]"
		}
		fmt.Fprintf(&buf, "  %s -> %s%s;\n", quote(e.Source), quote(e.Target), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n quest.Node, detailed bool) []string {
	label := n.DisplayLabel()
	switch {
	case n.IsSwitch():
		if detailed {
			label += fmt.Sprintf("\nbranches: %d", len(n.Switch.Branches))
		}
		return []string{"label=" + quote(label), "shape=diamond", "style=filled", "fillcolor=lightyellow"}
	case n.IsDialogue() && detailed:
		d := n.Dialogue
		if d.DisplayName != "" {
			label += "\n" + d.DisplayName
		}
		label += fmt.Sprintf("\nlines: %d, options: %d", len(d.Lines), len(d.Options))
	}
	attrs := []string{"label=" + quote(label)}
	if n.IsDialogue() && len(n.Dialogue.EntryRefs) > 0 {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func edgeLabel(g quest.Graph, e quest.Edge) string {
	src, ok := g.Node(e.Source)
	if !ok {
		return ""
	}
	switch {
	case src.IsDialogue():
		for _, o := range src.Dialogue.Options {
			if o.ID == e.SourceHandle {
				return truncate(o.Text)
			}
		}
	case src.IsSwitch():
		for _, b := range src.Switch.Branches {
			if b.ID == e.SourceHandle {
				return truncate(b.Condition)
			}
		}
	}
	return ""
}

func truncate(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= maxLabelRunes {
		return string(r)
	}
	return string(r[:maxLabelRunes-1]) + "…"
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
