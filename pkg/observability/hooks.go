// Package observability lets a program watch conversions without the
// libraries depending on a metrics or logging backend.
//
// The pipeline reports parse, emit and render stages through [Pipeline], and
// artifact cache lookups through [Cache]. Both default to no-ops. The CLI
// installs [LogHooks] at -vv, and batch runs add [Counters] for a summary;
// [Multi] delivers every event to several hook sets:
//
//	counters := observability.NewCounters()
//	observability.Install(observability.Multi{observability.NewLogHooks(logger), counters})
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events from the conversion pipeline.
// source is the input path, or a placeholder for in-memory sources.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, boxes, diagnostics int, duration time.Duration, err error)

	OnEmitStart(ctx context.Context, boxes int)
	OnEmitComplete(ctx context.Context, edges int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. keyType names the kind of
// entry ("artifact").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Hooks is implemented by types that observe both pipelines and caches.
type Hooks interface {
	PipelineHooks
	CacheHooks
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string) {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEmitStart(context.Context, int)                                    {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, int, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// The registry holds boxed values so atomic.Pointer can swap interfaces.
type pipelineBox struct{ h PipelineHooks }
type cacheBox struct{ h CacheHooks }

var (
	pipelineHooks atomic.Pointer[pipelineBox]
	cacheHooks    atomic.Pointer[cacheBox]
)

func init() { Reset() }

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&pipelineBox{h})
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&cacheBox{h})
	}
}

// Install sets h as both the pipeline and the cache hooks.
func Install(h Hooks) {
	SetPipelineHooks(h)
	SetCacheHooks(h)
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.Load().h }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().h }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.Store(&pipelineBox{NoopPipelineHooks{}})
	cacheHooks.Store(&cacheBox{NoopCacheHooks{}})
}
