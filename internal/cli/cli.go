// Package cli implements the appbadge command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/devikontech/app-badge/pkg/buildinfo"
	"github.com/devikontech/app-badge/pkg/cache"
	"github.com/devikontech/app-badge/pkg/config"
	"github.com/devikontech/app-badge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "appbadge"
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
	Logger   *log.Logger
	Settings config.Settings

	caches pipeline.Caches
}

// New creates a new CLI instance with a default logger and settings loaded
// from the standard config file location.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	settings, err := config.LoadDefault()
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
	}
	c.Settings = settings
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "appbadge",
		Short:        "Appbadge overlays build-variant badges on app icons",
		Long:         `Appbadge stamps a text ribbon ("DEV", "BETA", ...) onto app icons so different build variants are distinguishable at a glance on a device home screen.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.badgeCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Stores are kept on the
// CLI so repeated runs within one process (the preview loop) share them.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	if noCache || c.Settings.Cache.Disabled {
		return pipeline.NewRunner(pipeline.Caches{}, nil, c.Logger)
	}
	if c.caches.Images == nil {
		limit := c.Settings.Cache.MaxEntryPixels
		c.caches = pipeline.Caches{
			Images:  cache.NewMemory(limit),
			Badges:  cache.NewMemory(limit),
			Shadows: cache.NewMemory(limit),
		}
	}
	return pipeline.NewRunner(c.caches, nil, c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard
// (~/.cache/appbadge/). Preview renders land here.
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
