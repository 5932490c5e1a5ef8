// Package nodelink renders quest graphs as node-link diagrams.
//
// Dialogue nodes are drawn as rounded boxes and switch nodes as diamonds.
// Edges carry the option text or branch condition they come from, and the
// diagram flows left to right like the editor canvas.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderPDF] and [RenderPNG] go through SVG and need librsvg installed.
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
