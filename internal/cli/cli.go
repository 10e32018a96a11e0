// Package cli implements the voltpath command-line interface.
//
// This package provides commands for calculating low-voltage power
// distribution designs, checking network topology, inspecting equipment
// catalogs, rendering diagrams, and managing stored networks and the result
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - calc: Run the full calculation over a network definition
//   - check: Validate topology and enumerate paths without solving
//   - catalog: Inspect an equipment catalog file
//   - render: Export network or path diagrams (DOT, SVG, PNG)
//   - net: Save, list, show and remove stored networks
//   - cache: Manage the calculation result cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/buildinfo"
	"github.com/signalgrid/voltpath/pkg/cache"
	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/catalog"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "voltpath"

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
		Short:        "Voltpath calculates low-voltage signalling power distribution",
		Long:         `Voltpath enumerates the power paths of a signalling distribution network and solves voltages, currents, conductor sizes, fault currents and breaker ratings along each of them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.calcCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.netCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a calculation runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*calc.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return calc.NewRunner(cc, nil, c.Logger), nil
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

// loadCatalog reads the catalog file every solving command needs.
func loadCatalog(path string) (*catalog.Catalog, error) {
	return catalog.LoadFile(path)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/voltpath/).
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

// dataDir returns the data directory for stored networks using XDG standard
// (~/.local/share/voltpath/networks/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "networks"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "networks"), nil
}
