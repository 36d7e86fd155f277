// Package cli implements the eggplot command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/pkg/buildinfo"
	"github.com/matzehuels/eggplot/pkg/cache"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "eggplot"

	// redisPrefix namespaces probe results in a shared Redis.
	redisPrefix = "eggplot:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "eggplot draws MATLAB-style line plots with gnuplot",
		Long:         `eggplot turns CSV data and MATLAB-style line specs into gnuplot scripts, picks the best terminal for each output target and runs gnuplot.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.plotCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.linespecCommand())
	root.AddCommand(c.terminalsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Oracle Factory
// =============================================================================

// probeOpts selects how terminal support is discovered.
type probeOpts struct {
	gnuplot string // gnuplot executable
	assume  string // comma separated terminals assumed present, skips gnuplot
	noCache bool   // bypass the probe cache
	redis   string // redis URL for a shared probe cache
}

func (o *probeOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.gnuplot, "gnuplot", terminal.DefaultBinary, "gnuplot executable")
	cmd.Flags().StringVar(&o.assume, "assume-terminals", "", "assume these terminals exist instead of asking gnuplot (e.g. wxt,cairo)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "bypass the probe cache")
	cmd.Flags().StringVar(&o.redis, "redis", os.Getenv("EGGPLOT_REDIS_URL"), "redis URL for a shared probe cache")
}

// newOracle builds the oracle described by opts. The returned close function
// releases the cache backend.
func (c *CLI) newOracle(ctx context.Context, opts probeOpts, dir string) (terminal.Oracle, func() error, error) {
	if opts.assume != "" {
		static := terminal.StaticOracle{}
		for _, name := range strings.Split(opts.assume, ",") {
			static[strings.TrimSpace(name)] = true
		}
		return static, func() error { return nil }, nil
	}

	cc, err := c.newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return nil, nil, err
	}
	gnuplot := &terminal.GnuplotOracle{Binary: opts.gnuplot, Dir: dir, Logger: c.Logger}
	return terminal.NewCachedOracle(gnuplot, cc, opts.gnuplot, cache.DefaultProbeTTL), cc.Close, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL, Prefix: redisPrefix})
		if err != nil {
			c.Logger.Warn("redis unavailable, using file cache", "error", err)
		} else {
			return rc, nil
		}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/eggplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
