package layout

import "github.com/matzehuels/questcanvas/pkg/quest"

// AssignRanks assigns every node a column (rank) by longest-path layering.
//
// # Algorithm
//
// AssignRanks performs a breadth-first relaxation:
//  1. Seed the queue with every in-degree-zero node at rank 0, in node order.
//     If there is none (every node has an incoming edge) the first node is
//     seeded alone so that propagation can start.
//  2. Pop u; for each edge u→v, if rank(u)+1 > rank(v) set rank(v) = rank(u)+1
//     and enqueue v again.
//  3. Nodes that were never reached get rank 0.
//
// # Cycles
//
// A cycle keeps raising the ranks of its members. Updates that would exceed
// cfg.MaxDepth are dropped, so each node is enqueued at most MaxDepth+1 times
// and the pass terminates on any graph. Ranks inside a cycle are approximate.
//
// Edges whose endpoints are not in nodes are ignored.
//
// # Performance
//
// O(D·(V + E)) in the worst case where D is MaxDepth; O(V + E) on a DAG whose
// longest path does not exceed MaxDepth.
func AssignRanks(nodes []quest.Node, edges []quest.Edge, cfg Config) map[string]int {
	cfg = cfg.WithDefaults()
	adj := newAdjacency(nodes, edges)

	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if adj.inDegree[n.ID] == 0 {
			ranks[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}
	if len(queue) == 0 && len(nodes) > 0 {
		ranks[nodes[0].ID] = 0
		queue = append(queue, nodes[0].ID)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		next := ranks[curr] + 1
		if next > cfg.MaxDepth {
			continue
		}
		for _, child := range adj.out[curr] {
			if r, ok := ranks[child]; ok && r >= next {
				continue
			}
			ranks[child] = next
			queue = append(queue, child)
		}
	}

	for _, n := range nodes {
		if _, ok := ranks[n.ID]; !ok {
			ranks[n.ID] = 0
		}
	}
	return ranks
}

// adjacency is the out-edge and in-degree view of a graph restricted to
// edges between known nodes. Out-lists keep edge order.
type adjacency struct {
	out      map[string][]string
	in       map[string][]string
	inDegree map[string]int
}

func newAdjacency(nodes []quest.Node, edges []quest.Edge) adjacency {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	a := adjacency{
		out:      make(map[string][]string, len(nodes)),
		in:       make(map[string][]string, len(nodes)),
		inDegree: make(map[string]int, len(nodes)),
	}
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		a.out[e.Source] = append(a.out[e.Source], e.Target)
		a.in[e.Target] = append(a.in[e.Target], e.Source)
		a.inDegree[e.Target]++
	}
	return a
}
