package cli

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vpoulailleau/boxaro/pkg/buildinfo"
	"github.com/vpoulailleau/boxaro/pkg/cache"
	"github.com/vpoulailleau/boxaro/pkg/config"
	"github.com/vpoulailleau/boxaro/pkg/observability"
	"github.com/vpoulailleau/boxaro/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives status lines and check reports.
	Out   io.Writer
	outMu sync.Mutex

	// Persistent flags
	verbose    int
	configPath string
	noCache    bool

	// cfg is loaded before any command runs.
	cfg *config.Config

	// hooks observe every conversion of this process.
	hooks observability.Multi
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// levelFromVerbosity maps the -v count to a log level.
func levelFromVerbosity(n int) log.Level {
	switch {
	case n <= 0:
		return LogWarn
	case n == 1:
		return LogInfo
	default:
		return LogDebug
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself converts one file.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.convertCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().CountVarP(&c.verbose, "verbose", "v", "increase verbosity (-v info, -vv debug)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.setup(cmd)
	}

	// Register all subcommands
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the verbosity, loads the configuration and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	c.SetLogLevel(levelFromVerbosity(c.verbose))
	if c.verbose >= 2 {
		c.addHooks(observability.NewLogHooks(c.Logger))
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.noCache {
		cfg.Cache.Disabled = true
	}
	c.cfg = cfg
	if cfg.Path != "" {
		c.Logger.Info("loaded config", "path", cfg.Path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// addHooks registers h next to the already installed hooks.
func (c *CLI) addHooks(h observability.Hooks) {
	c.hooks = append(c.hooks, h)
	observability.Install(c.hooks)
}

// settings returns the loaded configuration, or the defaults when setup did
// not run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cc, err := c.newCache()
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache builds an in-memory LRU in front of the on-disk cache. When the
// cache directory is unusable only the memory tier is kept.
func (c *CLI) newCache() (cache.Cache, error) {
	cfg := c.settings()
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	mem, err := cache.NewMemoryCache(cfg.Cache.MemoryEntries)
	if err != nil {
		return nil, err
	}

	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, using memory cache only", "err", err)
		return mem, nil
	}
	disk, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache directory unusable, using memory cache only", "dir", dir, "err", err)
		return mem, nil
	}
	return cache.NewTiered(mem, disk, cfg.Cache.TTL.Duration), nil
}
