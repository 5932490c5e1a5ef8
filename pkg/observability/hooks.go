// Package observability lets a host program observe the pipeline, the cache,
// and the HTTP API without those packages importing a backend.
//
// Library code emits events through the package-level accessors:
//
//	observability.Pipeline().OnParseStart(ctx, "quests/intro.yml")
//
// The default hooks discard everything. Main installs real ones once at
// startup; [LogHooks] turns events into debug log lines:
//
//	observability.Install(observability.NewLogHooks(logger))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the document pipeline.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, nodeCount int)
	// OnLayoutComplete reports the edge crossings left after ordering.
	OnLayoutComplete(ctx context.Context, crossings int, duration time.Duration, err error)
	OnGenerateComplete(ctx context.Context, size int, duration time.Duration)
}

// CacheHooks receives cache lookups and writes. keyType is the key prefix,
// such as "layout" or "index".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives request events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError is called for requests answered with an error body.
	OnError(ctx context.Context, method, path string, err error)
}

// Hooks observes every event category.
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// NoopHooks discards all events.
type NoopHooks struct{}

func (NoopHooks) OnParseStart(context.Context, string)                               {}
func (NoopHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopHooks) OnLayoutStart(context.Context, int)                                 {}
func (NoopHooks) OnLayoutComplete(context.Context, int, time.Duration, error)        {}
func (NoopHooks) OnGenerateComplete(context.Context, int, time.Duration)             {}
func (NoopHooks) OnCacheHit(context.Context, string)                                 {}
func (NoopHooks) OnCacheMiss(context.Context, string)                                {}
func (NoopHooks) OnCacheSet(context.Context, string, int)                            {}
func (NoopHooks) OnRequest(context.Context, string, string)                          {}
func (NoopHooks) OnResponse(context.Context, string, string, int, time.Duration)     {}
func (NoopHooks) OnError(context.Context, string, string, error)                     {}

var _ Hooks = NoopHooks{}

type slot[T any] struct {
	mu  sync.RWMutex
	cur T
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(v T) {
	s.mu.Lock()
	s.cur = v
	s.mu.Unlock()
}

var (
	pipelineSlot = &slot[PipelineHooks]{cur: NoopHooks{}}
	cacheSlot    = &slot[CacheHooks]{cur: NoopHooks{}}
	httpSlot     = &slot[HTTPHooks]{cur: NoopHooks{}}
)

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Install registers h for every event category.
func Install(h Hooks) {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks.
func Reset() { Install(NoopHooks{}) }
