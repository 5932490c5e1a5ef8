package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/questcanvas/pkg/quest"
)

// GroupRows buckets nodes by rank. rows[r] lists the IDs of rank r in node
// order; the result has MaxRank+1 entries, some of which may be empty.
func GroupRows(nodes []quest.Node, ranks map[string]int) [][]string {
	maxRank := 0
	for _, n := range nodes {
		maxRank = max(maxRank, ranks[n.ID])
	}
	if len(nodes) == 0 {
		return nil
	}
	rows := make([][]string, maxRank+1)
	for _, n := range nodes {
		r := ranks[n.ID]
		rows[r] = append(rows[r], n.ID)
	}
	return rows
}

// OrderRows reduces edge crossings with one left-to-right barycenter sweep.
//
// For every row r ≥ 1 each node is weighted by the mean index of its
// predecessors in row r-1 (already ordered). Nodes without such a predecessor
// get cfg.UnplacedWeight and drift to the end. Rows are sorted stably, so ties
// keep their previous order and the result is deterministic for a fixed input.
//
// rows is modified in place and also returned.
func OrderRows(rows [][]string, edges []quest.Edge, cfg Config) [][]string {
	cfg = cfg.WithDefaults()
	parents := make(map[string][]string)
	for _, e := range edges {
		parents[e.Target] = append(parents[e.Target], e.Source)
	}

	for r := 1; r < len(rows); r++ {
		upper := posMap(rows[r-1])
		weights := make(map[string]float64, len(rows[r]))
		for _, id := range rows[r] {
			weights[id] = barycenter(parents[id], upper, cfg.UnplacedWeight)
		}
		slices.SortStableFunc(rows[r], func(a, b string) int {
			return cmp.Compare(weights[a], weights[b])
		})
	}
	return rows
}

func barycenter(parents []string, upper map[string]int, unplaced float64) float64 {
	sum, count := 0, 0
	for _, p := range parents {
		if pos, ok := upper[p]; ok {
			sum += pos
			count++
		}
	}
	if count == 0 {
		return unplaced
	}
	return float64(sum) / float64(count)
}

// posMap maps each ID to its index in the row.
func posMap(row []string) map[string]int {
	m := make(map[string]int, len(row))
	for i, id := range row {
		m[id] = i
	}
	return m
}
