package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkeller/cfgvault/internal/config"
	cliErrors "github.com/pkeller/cfgvault/internal/errors"
	"github.com/pkeller/cfgvault/internal/paths"
	"github.com/pkeller/cfgvault/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cfgvault configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the built-in defaults",
	Long: `Write a config file populated with the built-in defaults to the
standard config directory. Refuses to overwrite an existing file unless
--force is given.`,
	Example: `  cfgvault config init`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Long: `Print the configuration as resolved from the config file, environment
variables, and built-in defaults, in YAML.`,
	Example: `  cfgvault config show`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

func runConfigInit(w io.Writer) error {
	dir := paths.ConfigDir()
	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return cliErrors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"pass --force to overwrite it")
	}

	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(w, "%s✓ wrote %s%s\n", colorGreen, path, colorReset)
	return nil
}

func runConfigShow(w io.Writer) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.Default()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return err
}
