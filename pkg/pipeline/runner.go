package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// Runner executes pipeline stages against a shared cache. It keeps no
// per-document state and may be used from several goroutines at once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. Nil arguments select a [cache.NullCache], the
// default keyer, and log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute parses text, lays it out, lints it, and renders every requested
// format. With opts.Relayout unset the computed layout is reported but the
// document keeps its stored positions.
func (r *Runner) Execute(ctx context.Context, text []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	var g quest.Graph
	err := stage(&res.Stats.ParseTime, func() (err error) {
		g, err = r.Parse(ctx, text, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("parsed document", "source", opts.Source,
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "duration", res.Stats.ParseTime)

	err = stage(&res.Stats.LayoutTime, func() error {
		positioned, l, hit, err := r.LayoutWithCacheInfo(ctx, g, opts)
		if err != nil {
			return err
		}
		if opts.Relayout {
			g = positioned
		}
		res.Layout, res.CacheInfo.LayoutHit = l, hit
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("computed layout", "columns", len(res.Layout.Rows),
		"crossings", res.Layout.Crossings, "cached", res.CacheInfo.LayoutHit, "duration", res.Stats.LayoutTime)

	res.Graph = g
	res.GraphHash = StructureHash(g)
	res.Findings = quest.Lint(g)
	res.Stats.NodeCount, res.Stats.EdgeCount = g.NodeCount(), g.EdgeCount()
	res.Stats.Crossings = res.Layout.Crossings

	err = stage(&res.Stats.RenderTime, func() (err error) {
		res.Artifacts, err = r.Render(ctx, g, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("rendered outputs", "formats", opts.Formats,
		"findings", len(res.Findings), "duration", res.Stats.RenderTime)
	return res, nil
}

// Layout is LayoutWithCacheInfo without the hit flag.
func (r *Runner) Layout(ctx context.Context, g quest.Graph, opts Options) (quest.Graph, graph.Layout, error) {
	out, l, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return out, l, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func stage(d *time.Duration, fn func() error) error {
	start := time.Now()
	err := fn()
	*d = time.Since(start)
	return err
}
