package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pkeller/cfgvault/internal/config"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1,
		"number of newest sets to keep (default: retention from config)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backup sets",
	Long: `Delete all but the newest backup sets under the backup root.

The number of sets to keep comes from --keep, or from the "retention"
setting in the config file. Pruning never asks for confirmation; it is
an explicit retention operation.`,
	Example: `  # Keep the retention count from the config file
  cfgvault prune

  # Keep only the 3 newest sets
  cfgvault prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	return runPruneWithWriter(cmd.OutOrStdout())
}

func runPruneWithWriter(w io.Writer) error {
	keep := pruneKeep
	if keep < 0 {
		keep = config.DefaultRetention
		if loadedConfig != nil {
			keep = loadedConfig.Retention
		}
	}

	removed, err := newManager().Prune(keep)
	if err != nil {
		return err
	}

	if removed == 0 {
		fmt.Fprintf(w, "Nothing to prune; %d or fewer sets exist.\n", keep)
		return nil
	}
	fmt.Fprintf(w, "%s✓ pruned %d backup set(s), kept the %d newest%s\n",
		colorGreen, removed, keep, colorReset)
	return nil
}
