// Package commands implements the CLI commands for cfgvault.
package commands

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkeller/cfgvault/internal/backup"
	"github.com/pkeller/cfgvault/internal/config"
	"github.com/pkeller/cfgvault/internal/errors"
	"github.com/pkeller/cfgvault/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// Color constants for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// Persistent flag values.
var (
	verbosity  int
	quiet      bool
	logFormat  string
	backupDir  string
	configFile string
)

// loadedConfig holds the configuration resolved during initialization.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&backupDir, "backup-dir", "",
		"backup root directory (default: from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file path (default: search standard locations)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cfgvault version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "cfgvault",
	Short: "Back up and restore configuration files",
	Long: `cfgvault snapshots configuration files and directories into timestamped,
manifest-described backup sets, and restores them selectively with
integrity checking and optional pre-restore safety snapshots.

Backup sets are plain directories: each holds a backup-manifest.json
describing the captured items plus one copied payload per item. Nothing
is compressed, encrypted, or uploaded anywhere.`,
	Example: `  # Back up well-known configs
  cfgvault create --known git,ssh,zsh

  # Back up explicit paths
  cfgvault create ~/.config/starship.toml ~/.tmux.conf

  # List backup sets
  cfgvault list

  # Restore only git-related entries from the latest set, with a safety snapshot
  cfgvault restore --match git --restore-point

  # Check a set's integrity
  cfgvault validate 20240601_020000`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if configLoadErr != nil {
			return errors.NewUserError(configLoadErr, "check the config file or pass --config")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})
	slog.SetDefault(logger)

	return nil
}

// Execute runs the root command. Errors are printed with their suggestion
// before being returned so main can map them to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", colorRed, colorReset, err)

		var exitErr *errors.ExitError
		if stdErrors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s%s%s\n", colorGray, exitErr.Suggestion, colorReset)
		}
	}
	return err
}

// resolveRoot returns the backup root directory, preferring the
// --backup-dir flag over the config file over the built-in default.
func resolveRoot() string {
	if backupDir != "" {
		return backupDir
	}
	if loadedConfig != nil && loadedConfig.BackupRoot != "" {
		return loadedConfig.BackupRoot
	}
	return ""
}

// newManager builds a backup Manager wired to the resolved root and the
// default logger.
func newManager() *backup.Manager {
	return backup.NewManager(
		backup.WithRootDir(resolveRoot()),
		backup.WithLogger(slog.Default()),
	)
}
