// Package config loads boxaro settings.
//
// Settings are layered: built-in defaults, then a TOML file, then
// environment variables (a .env file in the working directory is loaded
// first). Command-line flags are applied on top by the CLI.
//
//	format = "svg"
//	strict = false
//
//	[cache]
//	dir = "/tmp/boxaro"
//	ttl = "24h"
//
//	[layout]
//	splines = "ortho"
//	ranksep = "1.5"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/vpoulailleau/boxaro/pkg/cache"
	"github.com/vpoulailleau/boxaro/pkg/emit"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	"github.com/vpoulailleau/boxaro/pkg/parser"
	"github.com/vpoulailleau/boxaro/pkg/pipeline"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

const (
	// AppName names the cache directory and the default config file.
	AppName = "boxaro"

	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = ".boxaro.toml"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "BOXARO_"
)

// Environment variables.
const (
	EnvFormat   = EnvPrefix + "FORMAT"
	EnvStrict   = EnvPrefix + "STRICT"
	EnvCacheDir = EnvPrefix + "CACHE_DIR"
	EnvNoCache  = EnvPrefix + "NO_CACHE"
	EnvCacheTTL = EnvPrefix + "CACHE_TTL"
)

// Config holds every setting that is not a per-invocation flag.
type Config struct {
	Format string       `toml:"format"`
	Strict bool         `toml:"strict"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`

	// Path is the file the config was read from, empty if none.
	Path string `toml:"-"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	Dir           string   `toml:"dir"`
	Disabled      bool     `toml:"disabled"`
	TTL           Duration `toml:"ttl"`
	MemoryEntries int      `toml:"memory_entries"`
}

// LayoutConfig tunes parsing and the generated layout hints.
type LayoutConfig struct {
	Pad         string `toml:"pad"`
	NodeSep     string `toml:"nodesep"`
	RankSep     string `toml:"ranksep"`
	Splines     string `toml:"splines"`
	AlignWeight int    `toml:"align_weight"`
	LeafFill    string `toml:"leaf_fill"`
	TabWidth    int    `toml:"tab_width"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	l := emit.DefaultOptions()
	return &Config{
		Format: string(pipeline.DefaultFormat),
		Cache: CacheConfig{
			TTL:           Duration{pipeline.DefaultArtifactTTL},
			MemoryEntries: cache.DefaultMemoryEntries,
		},
		Layout: LayoutConfig{
			Pad:         l.Pad,
			NodeSep:     l.NodeSep,
			RankSep:     l.RankSep,
			Splines:     l.Splines,
			AlignWeight: l.AlignWeight,
			LeafFill:    l.LeafFill,
			TabWidth:    parser.DefaultTabWidth,
		},
	}
}

// Load builds the configuration. path names a TOML file; when empty,
// DefaultFile is used if it exists in the working directory. An explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bxerrors.Wrap(bxerrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Path = path
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		c.Format = v
	}
	if v := strings.TrimSpace(getenv(EnvStrict)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "%s", EnvStrict)
		}
		c.Strict = b
	}
	if v := strings.TrimSpace(getenv(EnvCacheDir)); v != "" {
		c.Cache.Dir = v
	}
	if v := strings.TrimSpace(getenv(EnvNoCache)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "%s", EnvNoCache)
		}
		c.Cache.Disabled = b
	}
	if v := strings.TrimSpace(getenv(EnvCacheTTL)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "%s", EnvCacheTTL)
		}
		c.Cache.TTL = Duration{d}
	}
	return nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	if c.Format != "" {
		f, err := render.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		c.Format = string(f)
	}
	if c.Cache.TTL.Duration < 0 {
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Layout.TabWidth < 0 {
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "tab_width must not be negative")
	}
	return nil
}

// EmitOptions returns the layout hints for the emitter.
func (c *Config) EmitOptions() emit.Options {
	return emit.Options{
		Pad:         c.Layout.Pad,
		NodeSep:     c.Layout.NodeSep,
		RankSep:     c.Layout.RankSep,
		Splines:     c.Layout.Splines,
		AlignWeight: c.Layout.AlignWeight,
		LeafFill:    c.Layout.LeafFill,
	}
}

// PipelineOptions returns conversion options; flags are applied by the caller.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strict:      c.Strict,
		TabWidth:    c.Layout.TabWidth,
		Layout:      c.EmitOptions(),
		Format:      render.Format(c.Format),
		ArtifactTTL: c.Cache.TTL.Duration,
	}
}

// CacheDir returns the configured cache directory, or the XDG default
// (~/.cache/boxaro).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
