// Package quest defines the editable graph model of a quest document.
//
// A document is a set of keyed nodes. Each node is either a dialogue node
// (lines of text plus player options) or a switch node (conditional branches).
// Options with a target and branches that open another node form the edges of
// the graph.
//
// # Snapshots
//
// [Graph] is a value. Editing goes through [Graph.Apply], which copies the
// graph, runs a batch of [Op] values against the copy, and returns the copy:
//
//	g2, err := g.Apply(
//	    quest.AddNode{Node: quest.NewDialogue("", "shop")},
//	    quest.Connect{Source: "intro", Handle: "intro:answer:0", Target: "shop"},
//	)
//
// A failed batch leaves the input untouched. Callers that edit from several
// goroutines must serialize their calls against a single snapshot.
//
// # Identity
//
// Nodes carry a stable ID and a Label. Edges point at IDs; the codec writes
// Labels. Renaming a node therefore re-targets every option and branch that
// leads to it without touching the edges.
package quest
