package layout

import "github.com/matzehuels/questcanvas/pkg/quest"

// NodeHeight estimates the rendered height of a node from its content. A
// switch grows with its branches; a dialogue grows with its lines and options.
func NodeHeight(n quest.Node, cfg Config) float64 {
	cfg = cfg.WithDefaults()
	h := cfg.HeaderHeight + cfg.Padding
	switch {
	case n.IsSwitch():
		h += float64(len(n.Switch.Branches)) * cfg.BranchHeight
	case n.IsDialogue():
		h += float64(len(n.Dialogue.Lines)) * cfg.LineHeight
		h += float64(len(n.Dialogue.Options)) * cfg.OptionHeight
	}
	return h
}

// Place assigns coordinates column by column. Column r sits at
// x = r·(NodeWidth+RankGap) + LeftMargin; its nodes are stacked top to bottom
// with NodeGap between them and the stack is centered on AnchorY.
func Place(rows [][]string, nodes []quest.Node, cfg Config) map[string]quest.Position {
	cfg = cfg.WithDefaults()
	heights := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		heights[n.ID] = NodeHeight(n, cfg)
	}

	pos := make(map[string]quest.Position, len(nodes))
	for r, row := range rows {
		if len(row) == 0 {
			continue
		}
		total := cfg.NodeGap * float64(len(row)-1)
		for _, id := range row {
			total += heights[id]
		}
		x := float64(r)*(cfg.NodeWidth+cfg.RankGap) + cfg.LeftMargin
		y := cfg.AnchorY - total/2
		for _, id := range row {
			pos[id] = quest.Position{X: x, Y: y}
			y += heights[id] + cfg.NodeGap
		}
	}
	return pos
}
