package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters tallies events. It is safe for concurrent use.
type Counters struct {
	parses       atomic.Int64
	parseErrors  atomic.Int64
	diagnostics  atomic.Int64
	renders      atomic.Int64
	renderErrors atomic.Int64
	renderBytes  atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// CounterSnapshot is a point-in-time copy of Counters.
type CounterSnapshot struct {
	Parses       int64
	ParseErrors  int64
	Diagnostics  int64
	Renders      int64
	RenderErrors int64
	RenderBytes  int64
	CacheHits    int64
	CacheMisses  int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters { return &Counters{} }

// Snapshot returns the current values.
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Parses:       c.parses.Load(),
		ParseErrors:  c.parseErrors.Load(),
		Diagnostics:  c.diagnostics.Load(),
		Renders:      c.renders.Load(),
		RenderErrors: c.renderErrors.Load(),
		RenderBytes:  c.renderBytes.Load(),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
	}
}

func (c *Counters) OnParseStart(context.Context, string) {}

func (c *Counters) OnParseComplete(_ context.Context, _ string, _, diagnostics int, _ time.Duration, err error) {
	c.parses.Add(1)
	c.diagnostics.Add(int64(diagnostics))
	if err != nil {
		c.parseErrors.Add(1)
	}
}

func (c *Counters) OnEmitStart(context.Context, int)                          {}
func (c *Counters) OnEmitComplete(context.Context, int, time.Duration, error) {}
func (c *Counters) OnRenderStart(context.Context, string)                     {}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	c.renders.Add(1)
	if err != nil {
		c.renderErrors.Add(1)
		return
	}
	c.renderBytes.Add(int64(size))
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.cacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) {}

// Multi forwards every event to each of its hooks, in order.
type Multi []Hooks

func (m Multi) OnParseStart(ctx context.Context, source string) {
	for _, h := range m {
		h.OnParseStart(ctx, source)
	}
}

func (m Multi) OnParseComplete(ctx context.Context, source string, boxes, diagnostics int, d time.Duration, err error) {
	for _, h := range m {
		h.OnParseComplete(ctx, source, boxes, diagnostics, d, err)
	}
}

func (m Multi) OnEmitStart(ctx context.Context, boxes int) {
	for _, h := range m {
		h.OnEmitStart(ctx, boxes)
	}
}

func (m Multi) OnEmitComplete(ctx context.Context, edges int, d time.Duration, err error) {
	for _, h := range m {
		h.OnEmitComplete(ctx, edges, d, err)
	}
}

func (m Multi) OnRenderStart(ctx context.Context, format string) {
	for _, h := range m {
		h.OnRenderStart(ctx, format)
	}
}

func (m Multi) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	for _, h := range m {
		h.OnRenderComplete(ctx, format, size, d, err)
	}
}

func (m Multi) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheHit(ctx, keyType)
	}
}

func (m Multi) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (m Multi) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, keyType, size)
	}
}

var (
	_ Hooks = (*Counters)(nil)
	_ Hooks = Multi(nil)
)
