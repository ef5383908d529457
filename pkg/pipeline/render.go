package pipeline

import (
	"context"
	"time"

	"github.com/vpoulailleau/boxaro/pkg/cache"
	"github.com/vpoulailleau/boxaro/pkg/observability"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

// RenderWithCacheInfo renders dot in opts.Format, using the cache for
// everything but plain DOT output, and reports whether the cache was hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot string, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if opts.Format == render.FormatDOT {
		return []byte(dot), false, nil
	}

	cacheKey := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, artifactKeyType)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, string(opts.Format))
	data, err := render.Render(ctx, dot, opts.Format, render.Options{Scale: opts.Scale})
	observability.Pipeline().OnRenderComplete(ctx, string(opts.Format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, opts.ArtifactTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
	} else {
		r.Logger.Warn("cache write failed", "err", err)
	}

	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, dot string, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, dot, opts)
	return data, err
}
