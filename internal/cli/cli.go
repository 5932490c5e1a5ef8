// Package cli implements the questcanvas command-line interface.
//
// The commands wrap the document pipeline: converting quest documents to and
// from graph JSON, laying them out, linting them, rendering them, and checking
// node identifiers across a directory of documents. The CLI is built with
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - parse: document → graph JSON
//   - generate: graph JSON → document
//   - layout: recompute canvas positions
//   - fmt: rewrite a document in canonical form
//   - check: report node identifiers defined in more than one document
//   - lint: advisory findings for a document
//   - render: DOT, SVG, PNG or PDF drawing of a document
//   - inspect: interactive node browser
//   - serve: HTTP API for editor front ends
//   - cache: manage the layout cache
//
// # Configuration
//
// Layout constants are read from the [layout] table of questcanvas.toml in the
// working directory, or from the file named by --config. Flags override file
// values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers logging hooks for pipeline and cache events.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/buildinfo"
	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/observability"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "questcanvas"

	// defaultConfigFile is looked up in the working directory.
	defaultConfigFile = appName + ".toml"
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

	configPath string
	noCache    bool
	verbose    bool
	config     fileConfig
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
		Use:           appName,
		Short:         "Questcanvas edits quest dialogue documents as graphs",
		Long:          `Questcanvas converts quest and dialogue YAML documents into node graphs, lays them out, and writes them back in canonical form.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default: ./"+defaultConfigFile+" when present)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the layout cache")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.lintCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose, loads the config file, and attaches the logger to
// the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.Install(observability.NewLogHooks(c.Logger))
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
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

// cacheDir returns the cache directory using XDG standard (~/.cache/questcanvas/).
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

// derivedPath replaces the extension of input with ext.
func derivedPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// readInput reads a document from path, or from r when path is "-".
func readInput(r io.Reader, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		return data, pipeline.DefaultSource, err
	}
	data, err := pipeline.LoadFile(path)
	return data, path, err
}
