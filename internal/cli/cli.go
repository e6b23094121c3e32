// Package cli implements the mazekit command-line interface.
//
// This package provides commands for generating mazes across the
// supported topologies, rendering them as text, DOT, or graphviz
// output, archiving named mazes, serving the HTTP API, and managing
// the result cache. The CLI is built using cobra with structured
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Carve a maze and write it as a JSON document
//   - render: Render a maze document to txt, dot, svg, png, or pdf
//   - view: Page through a text render interactively
//   - stats: Print census statistics for a maze document
//   - archive: Save, list, show, and remove named mazes
//   - serve: Run the HTTP API server
//   - cache: Inspect and clear the result cache
//
// # Configuration
//
// Flag defaults come from mazekit.toml, searched in the working
// directory and then ~/.config/mazekit/. Flags set on the command
// line always win over file values.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/buildinfo"
	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "mazekit"

// Log levels exported for use in main.go.
const (
	LogDebug = charmlog.DebugLevel
	LogInfo  = charmlog.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *charmlog.Logger

	cfg        *Config
	verbose    bool
	noCache    bool
	cacheDir   string
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level charmlog.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level charmlog.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mazekit generates and renders mazes",
		Long:         `Mazekit is a toolkit for generating mazes across rectangular, polar, weave, and other topologies, rendering them as text or graphviz output, and serving them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(charmlog.DebugLevel)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")
	root.PersistentFlags().StringVar(&c.cacheDir, "cache-dir", "", "cache directory (default ~/.cache/mazekit)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default mazekit.toml, then ~/.config/mazekit/mazekit.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runner creates a pipeline runner backed by the configured cache.
func (c *CLI) runner() (*pipeline.Runner, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend: --no-cache wins, then the
// --cache-dir flag, then the configured directory.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir := c.cacheDir
	if dir == "" {
		dir = c.cfg.Cache.Dir
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mazekit/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	return strings.Split(s, ",")
}

// nopCloser wraps an io.Writer with a no-op Close method so stdout can
// stand in for an output file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when
// path is empty. An existing file is overwritten.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
