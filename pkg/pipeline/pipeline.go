// Package pipeline runs a complete boxaro conversion.
//
// This package implements the decode → parse → emit → render pipeline shared
// by the convert, batch and check commands, so every entry point reports
// diagnostics, logs and caches the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build the box tree and connection registry from source lines
//  2. Emit: Generate the Graphviz document
//  3. Render: Lay out and convert the document (SVG, PNG, JPG, PDF)
//
// Parsing and emitting always run, so diagnostics are reported on every
// conversion. Rendered bytes are cached by a hash of the DOT document.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.ConvertFile(ctx, "system.bao", pipeline.Options{
//	    Format: render.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("system.svg", result.Artifact, 0o644)
//
// A Runner holds no per-run state: each conversion builds its own diagram,
// so one Runner may convert many files concurrently.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vpoulailleau/boxaro/pkg/cache"
	"github.com/vpoulailleau/boxaro/pkg/diagram"
	"github.com/vpoulailleau/boxaro/pkg/emit"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	"github.com/vpoulailleau/boxaro/pkg/parser"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is used when neither flags, config nor the output
	// extension name a format.
	DefaultFormat = render.FormatDOT

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 7 * 24 * time.Hour

	// artifactKeyType labels artifact cache events.
	artifactKeyType = "artifact"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one conversion.
type Options struct {
	// Parse options
	Strict   bool `toml:"strict"`
	TabWidth int  `toml:"tab_width"`

	// Emit options
	Layout   emit.Options `toml:"-"`
	Validate bool         `toml:"-"` // Check the DOT with Graphviz even when not rendering

	// Render options
	Format render.Format `toml:"format"`
	Scale  float64       `toml:"scale"`

	// Cache options
	ArtifactTTL time.Duration `toml:"-"`
	Refresh     bool          `toml:"-"` // Ignore cached artifacts, still store new ones

	// Runtime options
	Logger *log.Logger `toml:"-"`
}

// ValidateAndSetDefaults checks the format and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if o.TabWidth <= 0 {
		o.TabWidth = parser.DefaultTabWidth
	}
	if o.Scale < 0 {
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "scale must not be negative, got %g", o.Scale)
	}
	if o.ArtifactTTL <= 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}
	return nil
}

// ParserOptions returns the parser options matching o.
func (o *Options) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithStrict(o.Strict),
		parser.WithTabWidth(o.TabWidth),
		parser.WithLogger(o.Logger),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: string(o.Format), Scale: o.Scale}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a conversion.
type Result struct {
	// RunID identifies the conversion in logs.
	RunID string

	// Source is the input path, or "<stdin>"/"<memory>".
	Source string

	// Diagram is the parsed diagram.
	Diagram *diagram.Diagram

	// Diagnostics are the recoverable problems found while parsing.
	Diagnostics []parser.Diagnostic

	// DOT is the generated Graphviz document.
	DOT string

	// Format and Artifact are the rendered output. For FormatDOT the
	// artifact is the DOT text.
	Format   render.Format
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == parser.SeverityError {
			return true
		}
	}
	return false
}

// Stats contains pipeline execution statistics.
type Stats struct {
	diagram.Stats
	Edges      int
	ParseTime  time.Duration
	EmitTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether the artifact came from cache
}
