package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/cache"
	"github.com/pagebind/pagebind/pkg/pagespec"
	"github.com/pagebind/pagebind/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "pagebind"

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2025-12-20T14:32:01Z")
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the pagebind CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (convert,
// inspect, merge, unlock, office, serve, cache), configures logging based on
// the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. The provided ctx is the base context; cancelling it
// (e.g. on SIGINT) aborts the running command.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pagebind",
		Short:        "Pagebind turns images into paginated PDF documents",
		Long:         `Pagebind is a CLI tool for converting collections of images into paginated PDF documents, with per-image page sizes, margins, rotation, and scaling control.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pagebind %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newUnlockCmd())
	root.AddCommand(newOfficeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
// With noCache, results are neither read from nor written to disk.
func newRunner(logger *charmlog.Logger, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), nil, logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// loadBaseDefaults loads the user config file and returns the resulting
// settings base. A missing config file is not an error; the built-in
// defaults are returned unchanged.
func loadBaseDefaults() (*pagespec.Defaults, error) {
	path, err := pagespec.ConfigPath(appName)
	if err != nil {
		return nil, err
	}
	base, err := pagespec.LoadConfig(path, pagespec.BuiltinDefaults())
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &base, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pagebind/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
