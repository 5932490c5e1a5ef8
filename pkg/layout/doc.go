// Package layout places quest graph nodes on a left-to-right layered canvas.
//
// The engine is used when a document carries no position hints. It works on
// arbitrary directed graphs, including cyclic and disconnected ones, and is
// deterministic: the same nodes and edges in the same order always produce
// the same coordinates.
//
// # Pipeline
//
//  1. [AssignRanks]: longest-path layering with a bounded propagation depth
//  2. [GroupRows]: bucket nodes into columns by rank
//  3. [OrderRows]: barycenter sweep to reduce crossings, stable on ties
//  4. [NodeHeight]: content-dependent height per node
//  5. [Place]: stack each column around a fixed vertical anchor
//
// [Compute] runs all steps and also reports [CountCrossings] for the final
// order. All constants live in [Config]; [DefaultConfig] documents the defaults.
//
// # Example
//
//	nodes := layout.Layout(g.Nodes, g.Edges, layout.DefaultConfig())
package layout
