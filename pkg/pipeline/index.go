package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/index"
	"github.com/matzehuels/questcanvas/pkg/observability"
)

// Duplicates reports every node identifier defined in more than one of docs,
// ignoring the document named exclude. The report is cached by document
// content.
func (r *Runner) Duplicates(ctx context.Context, docs []index.Source, exclude string) (map[string][]string, error) {
	cacheHooks := observability.Cache()

	cacheKey := r.Keyer.IndexKey(cache.HashJSON(docs), exclude)

	if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var dups map[string][]string
		if json.Unmarshal(raw, &dups) == nil {
			cacheHooks.OnCacheHit(ctx, "index")
			return dups, nil
		}
	}
	cacheHooks.OnCacheMiss(ctx, "index")

	ix := index.Build(docs, exclude)
	dups := ix.Duplicates()
	r.Logger.Debug("built identifier index", "documents", len(docs), "ids", ix.Len(), "duplicates", len(dups))

	if raw, err := json.Marshal(dups); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, raw, cache.TTLIndex); err == nil {
			cacheHooks.OnCacheSet(ctx, "index", len(raw))
		}
	}
	return dups, nil
}
