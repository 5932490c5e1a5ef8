package layout

import "github.com/matzehuels/questcanvas/pkg/quest"

// Result is the outcome of a layout pass together with the intermediate
// structures, which callers use for diagnostics.
type Result struct {
	Positions map[string]quest.Position
	Ranks     map[string]int
	Rows      [][]string
	Crossings int
}

// MaxRank returns the index of the right-most column.
func (r Result) MaxRank() int {
	if len(r.Rows) == 0 {
		return 0
	}
	return len(r.Rows) - 1
}

// Compute runs the full pipeline: ranking, row grouping, barycenter ordering,
// height estimation, and coordinate assignment.
func Compute(nodes []quest.Node, edges []quest.Edge, cfg Config) Result {
	cfg = cfg.WithDefaults()
	ranks := AssignRanks(nodes, edges, cfg)
	rows := OrderRows(GroupRows(nodes, ranks), edges, cfg)
	return Result{
		Positions: Place(rows, nodes, cfg),
		Ranks:     ranks,
		Rows:      rows,
		Crossings: CountCrossings(rows, edges),
	}
}

// Layout returns copies of nodes with computed positions. Edges are read only.
func Layout(nodes []quest.Node, edges []quest.Edge, cfg Config) []quest.Node {
	res := Compute(nodes, edges, cfg)
	out := make([]quest.Node, len(nodes))
	for i, n := range nodes {
		c := n.Clone()
		c.Position = res.Positions[n.ID]
		out[i] = c
	}
	return out
}

// Apply lays out a whole graph snapshot and returns the positioned copy.
func Apply(g quest.Graph, cfg Config) quest.Graph {
	out := g.Clone()
	out.Nodes = Layout(g.Nodes, g.Edges, cfg)
	return out
}
