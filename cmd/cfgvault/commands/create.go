package commands

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	cliErrors "github.com/pkeller/cfgvault/internal/errors"
	"github.com/pkeller/cfgvault/internal/paths"
)

var (
	createKnown []string
	createDir   string
	createName  string
)

func init() {
	createCmd.Flags().StringSliceVar(&createKnown, "known", nil,
		"back up well-known configs by name (e.g. git,ssh,zsh); see --known list")
	createCmd.Flags().StringVar(&createDir, "dir", "",
		"explicit backup set directory (default: <root>/<timestamp>)")
	createCmd.Flags().StringVar(&createName, "name", "",
		"override the payload name (single path only)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [paths...]",
	Short: "Create a backup set",
	Long: `Create a new backup set and capture the given files or directories into it.

Paths may be given directly, or by catalog name with the --known flag.
The catalog covers common configuration files (gitconfig, ssh config,
shell rc files); extra entries can be added under "configs" in the
cfgvault config file. Paths that do not exist are skipped with a warning.

Each captured item is recorded in the set's manifest with its size at
capture time, used later for integrity validation.`,
	Example: `  # Back up well-known configs
  cfgvault create --known git,ssh

  # Back up explicit paths
  cfgvault create ~/.tmux.conf ~/.config/starship.toml

  # List valid catalog names
  cfgvault create --known list

  See Also:
    cfgvault list     - List backup sets
    cfgvault restore  - Restore from a backup set`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	return runCreateWithWriter(cmd.OutOrStdout(), args)
}

func runCreateWithWriter(w io.Writer, args []string) error {
	if len(createKnown) == 1 && createKnown[0] == "list" {
		fmt.Fprintln(w, strings.Join(knownNames(), "\n"))
		return nil
	}

	items, err := collectItems(args)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return cliErrors.NewUserError(errors.New("nothing to back up"),
			"pass paths or --known names; see: cfgvault create --known list")
	}
	if createName != "" && len(items) != 1 {
		return cliErrors.NewUserError(errors.New("--name requires exactly one path"), "")
	}

	mgr := newManager()
	set, err := mgr.CreateSet(createDir)
	if err != nil {
		return errors.Wrap(err, "creating backup set")
	}

	captured := 0
	for _, item := range items {
		if _, err := os.Stat(item); err != nil {
			fmt.Fprintf(w, "%sskipped %s: not found%s\n", colorYellow, item, colorReset)
			continue
		}
		if _, err := set.BackupItem(item, createName); err != nil {
			return errors.Wrapf(err, "backing up %s", item)
		}
		fmt.Fprintf(w, "%s✓ %s%s\n", colorGreen, item, colorReset)
		captured++
	}

	if captured == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No files captured. The backup set was created but is empty.")
	}
	fmt.Fprintf(w, "\nBackup set: %s (%d items)\n", set.Dir(), captured)

	return nil
}

// collectItems resolves the explicit paths and --known names into the
// list of items to capture.
func collectItems(args []string) ([]string, error) {
	items := make([]string, 0, len(args)+len(createKnown))

	for _, arg := range args {
		items = append(items, paths.ExpandHome(arg))
	}

	for _, name := range createKnown {
		// Config file entries extend and override the built-in catalog
		if loadedConfig != nil {
			if p, ok := loadedConfig.Configs[name]; ok {
				items = append(items, paths.ExpandHome(p))
				continue
			}
		}
		kc, err := paths.LookupKnownConfig(name)
		if err != nil {
			return nil, cliErrors.NewUserError(err,
				"see valid names with: cfgvault create --known list")
		}
		items = append(items, kc.Path)
	}

	return items, nil
}

// knownNames returns the catalog names plus any configured extras, sorted.
func knownNames() []string {
	names := paths.KnownConfigNames()
	if loadedConfig != nil {
		for name := range loadedConfig.Configs {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
