package quest

import (
	"fmt"
	"slices"
)

// Graph is a snapshot of nodes and edges. Callers treat a returned Graph as the
// new authoritative state; edit operations never mutate the receiver.
//
// Node order is significant: it is the document key order and drives the
// deterministic tie-breaking of the layout engine.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: slices.Clone(g.Edges),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	if i := g.indexOf(id); i >= 0 {
		return g.Nodes[i], true
	}
	return Node{}, false
}

// NodeByLabel returns the node written under the given document key.
func (g Graph) NodeByLabel(label string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// EdgeFrom returns the edge leaving the given option or branch handle.
func (g Graph) EdgeFrom(source, handle string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.Source == source && e.SourceHandle == handle {
			return e, true
		}
	}
	return Edge{}, false
}

// Successors returns the target IDs of all edges leaving the node, in edge order.
func (g Graph) Successors(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// Predecessors returns the source IDs of all edges entering the node, in edge order.
func (g Graph) Predecessors(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Target == id {
			out = append(out, e.Source)
		}
	}
	return out
}

// Validate checks structural integrity: unique non-empty IDs and labels, kind
// payloads matching the discriminant, and edges whose endpoints exist.
func (g Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	labels := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if ids[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		if labels[n.DisplayLabel()] {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, n.DisplayLabel())
		}
		ids[n.ID] = true
		labels[n.DisplayLabel()] = true
		if (n.Kind == KindDialogue && n.Dialogue == nil) || (n.Kind == KindSwitch && n.Switch == nil) {
			return fmt.Errorf("%w: node %s has no %s payload", ErrKindMismatch, n.ID, n.Kind)
		}
	}
	for _, e := range g.Edges {
		src, ok := g.Node(e.Source)
		if !ok {
			return fmt.Errorf("%w: edge source %s", ErrUnknownNode, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("%w: edge target %s", ErrUnknownNode, e.Target)
		}
		if !slices.Contains(src.Handles(), e.SourceHandle) {
			return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, e.SourceHandle, e.Source)
		}
	}
	return nil
}

// DeriveEdges builds one edge per option whose target names an existing node
// and one per open branch whose value names an existing node. Targets are
// resolved by label first, then by ID.
func DeriveEdges(nodes []Node) []Edge {
	byLabel := make(map[string]string, len(nodes))
	byID := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		byLabel[n.DisplayLabel()] = n.ID
		byID[n.ID] = true
	}
	resolve := func(ref string) (string, bool) {
		if ref == "" {
			return "", false
		}
		if id, ok := byLabel[ref]; ok {
			return id, true
		}
		return ref, byID[ref]
	}

	edges := []Edge{}
	for _, n := range nodes {
		switch {
		case n.IsDialogue():
			for _, o := range n.Dialogue.Options {
				if to, ok := resolve(o.Target); ok {
					edges = append(edges, Edge{ID: EdgeID(n.ID, o.ID, to), Source: n.ID, SourceHandle: o.ID, Target: to})
				}
			}
		case n.IsSwitch():
			for _, b := range n.Switch.Branches {
				if b.Action != ActionOpen {
					continue
				}
				if to, ok := resolve(b.Value); ok {
					edges = append(edges, Edge{ID: EdgeID(n.ID, b.ID, to), Source: n.ID, SourceHandle: b.ID, Target: to})
				}
			}
		}
	}
	return edges
}

func (g Graph) indexOf(id string) int {
	return slices.IndexFunc(g.Nodes, func(n Node) bool { return n.ID == id })
}
