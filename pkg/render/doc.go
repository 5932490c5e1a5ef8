// Package render turns quest graphs into pictures.
//
// The [nodelink] subpackage draws a graph as a left-to-right Graphviz diagram.
// This package holds the format conversion shared by renderers: [ToPDF] and
// [ToPNG] convert SVG output through the external rsvg-convert tool.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/questcanvas/pkg/render/nodelink
package render
