package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false,
		"remove without asking for confirmation")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <set>",
	Aliases: []string{"rm"},
	Short:   "Remove a backup set",
	Long: `Remove a backup set directory and everything in it.

The set may be named by its timestamp ID or by path. Unless --force is
given, a confirmation prompt is shown first. Removing a set that does
not exist is not an error.`,
	Example: `  cfgvault remove 20240101_010000

  # Skip the confirmation prompt
  cfgvault remove --force 20240101_010000`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return runRemoveWithWriter(cmd.OutOrStdout(), args[0])
}

func runRemoveWithWriter(w io.Writer, arg string) error {
	mgr := newManager()

	setDir, err := resolveSetDir(mgr, arg)
	if err != nil {
		return err
	}

	removed, err := mgr.RemoveSet(setDir, removeForce)
	if err != nil {
		return err
	}

	if removed {
		fmt.Fprintf(w, "%s✓ removed %s%s\n", colorGreen, setDir, colorReset)
	} else {
		fmt.Fprintln(w, "Not removed.")
	}
	return nil
}
