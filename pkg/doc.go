// Package pkg provides the core libraries of questcanvas, an editor core for
// quest and dialogue documents.
//
// # Overview
//
// A quest document is a YAML mapping whose top-level keys are dialogue or
// switch nodes. Questcanvas turns such a document into a graph an editor can
// draw, keeps canvas positions stable, and writes the graph back in canonical
// form. The pkg directory is organized into four areas:
//
//  1. Model: [quest] (nodes, edges, edit operations, lint) and [layout]
//     (layered placement)
//  2. Codec: [codec] (document ↔ graph) and [index] (identifiers across
//     documents)
//  3. Orchestration: [pipeline] (parse → layout → generate → render) with
//     [cache] and [observability]
//  4. Surfaces: [graph] (JSON wire format), [render] (Graphviz drawings) and
//     [httpapi] (HTTP API for editor front ends)
//
// # Architecture
//
// The typical data flow through questcanvas:
//
//	quest document (YAML)
//	         ↓
//	    [codec] package (decode, build nodes and edges)
//	         ↓
//	    [layout] package (ranks, row order, positions)
//	         ↓
//	    [quest] package (edits, lint)
//	         ↓
//	    [codec] package (canonical document) or [render] (DOT/SVG/PNG/PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/questcanvas/pkg/codec"
//	    "github.com/matzehuels/questcanvas/pkg/quest"
//	)
//
//	// 1. Parse. Positions are computed when the document stores none.
//	g := codec.Parse(text)
//
//	// 2. Edit. Apply never mutates g.
//	g, err := g.Apply(quest.RenameNode{ID: "shop", Label: "bazaar"})
//
//	// 3. Write back. Every option leading to the shop now opens "bazaar".
//	out := codec.Generate(g)
//
// The [pipeline] package wraps the same steps with caching, hooks and
// rendering, and is what the CLI and the HTTP API use.
//
// [quest]: github.com/matzehuels/questcanvas/pkg/quest
// [layout]: github.com/matzehuels/questcanvas/pkg/layout
// [codec]: github.com/matzehuels/questcanvas/pkg/codec
// [index]: github.com/matzehuels/questcanvas/pkg/index
// [pipeline]: github.com/matzehuels/questcanvas/pkg/pipeline
// [cache]: github.com/matzehuels/questcanvas/pkg/cache
// [observability]: github.com/matzehuels/questcanvas/pkg/observability
// [graph]: github.com/matzehuels/questcanvas/pkg/graph
// [render]: github.com/matzehuels/questcanvas/pkg/render
// [httpapi]: github.com/matzehuels/questcanvas/pkg/httpapi
package pkg
