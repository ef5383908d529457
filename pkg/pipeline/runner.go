package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vpoulailleau/boxaro/pkg/cache"
	"github.com/vpoulailleau/boxaro/pkg/emit"
	bxio "github.com/vpoulailleau/boxaro/pkg/io"
	"github.com/vpoulailleau/boxaro/pkg/observability"
	"github.com/vpoulailleau/boxaro/pkg/parser"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store conversion results. Multiple goroutines can safely use the same
// Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ConvertFile reads, decodes and converts the file at path.
func (r *Runner) ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := bxio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	return r.Convert(ctx, src, opts)
}

// Convert runs parse → emit → render on a decoded source.
//
// On a fatal parse error (no top-level box, strict-mode diagnostics) the
// returned Result still carries the diagnostics alongside the error.
func (r *Runner) Convert(ctx context.Context, src *bxio.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Source: sourceName(src),
		Format: opts.Format,
	}
	logger := r.Logger.With("run", result.RunID[:8], "source", result.Source)
	opts.Logger = logger
	if src.Encoding != bxio.EncodingUTF8 {
		logger.Info("decoded with fallback encoding", "encoding", src.Encoding)
	}

	// Stage 1: Parse
	parsed, err := r.parse(ctx, src, opts)
	if parsed != nil {
		result.Diagram = parsed.Diagram
		result.Diagnostics = parsed.Diagnostics
		result.Stats.ParseTime = parsed.duration
	}
	if err != nil {
		return result, err
	}
	result.Stats.Stats = parsed.Diagram.Stats()
	logger.Info("parsed diagram",
		"boxes", result.Stats.Boxes,
		"connections", result.Stats.Connections,
		"diagnostics", len(result.Diagnostics),
		"duration", result.Stats.ParseTime)
	if logger.GetLevel() <= log.DebugLevel {
		for _, b := range parsed.Diagram.Boxes.All() {
			logger.Debug("box\n" + b.String())
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Stage 2: Emit
	emitStart := time.Now()
	observability.Pipeline().OnEmitStart(ctx, result.Stats.Boxes)
	g, err := emit.Emit(parsed.Diagram, opts.Layout)
	if err != nil {
		observability.Pipeline().OnEmitComplete(ctx, 0, time.Since(emitStart), err)
		return result, err
	}
	result.DOT = g.String()
	result.Stats.Edges = len(g.Edges())
	result.Stats.EmitTime = time.Since(emitStart)
	observability.Pipeline().OnEmitComplete(ctx, result.Stats.Edges, result.Stats.EmitTime, nil)
	logger.Debug("emitted graph", "edges", result.Stats.Edges, "bytes", len(result.DOT))
	if opts.Validate {
		if err := render.Validate(result.DOT); err != nil {
			return result, err
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, result.DOT, opts)
	if err != nil {
		return result, err
	}
	result.Artifact = artifact
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Check reads and parses the file at path without emitting or rendering.
// Strict mode is ignored: every diagnostic is returned in the Result and
// the error is non-nil only for unreadable input or a document without a box.
func (r *Runner) Check(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := bxio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	opts.Strict = false
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString(), Source: sourceName(src)}
	opts.Logger = r.Logger.With("run", result.RunID[:8], "source", result.Source)

	parsed, err := r.parse(ctx, src, opts)
	if parsed != nil {
		result.Diagram = parsed.Diagram
		result.Diagnostics = parsed.Diagnostics
		result.Stats.ParseTime = parsed.duration
		result.Stats.Stats = parsed.Diagram.Stats()
	}
	return result, err
}

// parseResult is a parser.Result with its duration.
type parseResult struct {
	*parser.Result
	duration time.Duration
}

// parse runs the parser stage on src.
func (r *Runner) parse(ctx context.Context, src *bxio.Source, opts Options) (*parseResult, error) {
	name := sourceName(src)
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, name)

	res, err := parser.Parse(src.Lines(), opts.ParserOptions()...)
	d := time.Since(start)

	var boxes, diags int
	if res != nil {
		boxes = res.Diagram.Boxes.Len()
		diags = len(res.Diagnostics)
	}
	observability.Pipeline().OnParseComplete(ctx, name, boxes, diags, d, err)

	if res == nil {
		return nil, err
	}
	return &parseResult{Result: res, duration: d}, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func sourceName(src *bxio.Source) string {
	if src.Path == "" {
		return "<memory>"
	}
	return src.Path
}
