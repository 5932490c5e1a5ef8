package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/observability"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// shape is the part of a node the layout engine reads: identity, order,
// kind, and the counts that determine its height.
type shape struct {
	ID       string     `json:"id"`
	Kind     quest.Kind `json:"kind"`
	Lines    int        `json:"lines,omitempty"`
	Options  int        `json:"options,omitempty"`
	Branches int        `json:"branches,omitempty"`
}

// StructureHash hashes everything that influences layout. Text edits and
// position changes leave it unchanged.
func StructureHash(g quest.Graph) string {
	shapes := make([]shape, len(g.Nodes))
	for i, n := range g.Nodes {
		s := shape{ID: n.ID, Kind: n.Kind}
		switch {
		case n.IsDialogue():
			s.Lines = len(n.Dialogue.Lines)
			s.Options = len(n.Dialogue.Options)
		case n.IsSwitch():
			s.Branches = len(n.Switch.Branches)
		}
		shapes[i] = s
	}
	edges := make([][2]string, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = [2]string{e.Source, e.Target}
	}
	return cache.HashJSON(struct {
		Nodes []shape     `json:"nodes"`
		Edges [][2]string `json:"edges"`
	}{shapes, edges})
}

// LayoutWithCacheInfo computes positions for every node of g, ignoring the
// positions it already carries, and reports whether the result came from the
// cache. The returned graph is a positioned copy; g is not modified.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g quest.Graph, opts Options) (quest.Graph, graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return quest.Graph{}, graph.Layout{}, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(StructureHash(g), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil && covers(cached, g) {
				cacheHooks.OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, cached.Crossings, time.Since(start), nil)
				return place(g, cached), cached, true, nil
			}
			opts.Logger.Debug("discarding stale layout entry", "key", cacheKey)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	l := graph.FromResult(layout.Compute(g.Nodes, g.Edges, opts.Layout))

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("layout cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	hooks.OnLayoutComplete(ctx, l.Crossings, time.Since(start), nil)
	return place(g, l), l, false, nil
}

// covers reports whether a cached layout has a position for every node.
func covers(l graph.Layout, g quest.Graph) bool {
	for _, n := range g.Nodes {
		if _, ok := l.Positions[n.ID]; !ok {
			return false
		}
	}
	return true
}

func place(g quest.Graph, l graph.Layout) quest.Graph {
	out := g.Clone()
	for i := range out.Nodes {
		out.Nodes[i].Position = l.Positions[out.Nodes[i].ID]
	}
	return out
}
