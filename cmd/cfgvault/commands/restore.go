package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pkeller/cfgvault/internal/backup"
	cliErrors "github.com/pkeller/cfgvault/internal/errors"
)

var (
	restoreMatch        []string
	restoreValidate     bool
	restoreRestorePoint bool
)

func init() {
	restoreCmd.Flags().StringArrayVar(&restoreMatch, "match", nil,
		"restore only entries whose original path contains this substring (repeatable)")
	restoreCmd.Flags().BoolVar(&restoreValidate, "validate", false,
		"validate the backup set before restoring; abort on any finding")
	restoreCmd.Flags().BoolVar(&restoreRestorePoint, "restore-point", false,
		"snapshot the current state of the targets into a new set before restoring")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [set]",
	Short: "Restore files from a backup set",
	Long: `Restore files from a backup set to their original locations.

The set may be named by its timestamp ID or by path. With no argument,
an interactive picker is shown on a terminal; otherwise the most recent
set is used.

Restores are best effort: a failing entry is reported and skipped, and
the remaining entries are still restored. The command exits non-zero if
anything failed. With --validate the set's integrity is checked first
and any finding aborts the restore before a single file is touched.
With --restore-point the current state of every target is captured into
a fresh backup set first, so the restore itself can be undone.`,
	Example: `  # Restore everything from the most recent set
  cfgvault restore

  # Restore only git-related entries from a specific set
  cfgvault restore 20240601_020000 --match git

  # Validate first and keep an undo snapshot
  cfgvault restore --validate --restore-point`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	return runRestoreWithWriter(cmd.OutOrStdout(), arg)
}

func runRestoreWithWriter(w io.Writer, arg string) error {
	mgr := newManager()

	setDir, err := resolveSetDir(mgr, arg)
	if err != nil {
		if errors.Is(err, errPickerAborted) {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
		if errors.Is(err, backup.ErrNoBackupSets) {
			return cliErrors.NewUserError(err, "create one with: cfgvault create")
		}
		return err
	}

	result := mgr.Restore(setDir, backup.RestoreOptions{
		Patterns:      restoreMatch,
		ValidateFirst: restoreValidate,
		RestorePoint:  restoreRestorePoint,
	})

	printRestoreResult(w, setDir, result)

	if !result.Success {
		return cliErrors.NewSystemError(
			errors.Newf("restore from %s did not complete cleanly", setDir), "")
	}
	return nil
}

func printRestoreResult(w io.Writer, setDir string, result *backup.RestoreResult) {
	fmt.Fprintf(w, "%sRestoring from %s%s\n\n", colorBold, setDir, colorReset)

	if result.RestorePoint != "" {
		fmt.Fprintf(w, "Restore point: %s\n\n", result.RestorePoint)
	}

	for _, msg := range result.ValidationErrors {
		fmt.Fprintf(w, "%s✗ %s%s\n", colorRed, msg, colorReset)
	}
	for _, path := range result.RestoredFiles {
		fmt.Fprintf(w, "%s✓ %s%s\n", colorGreen, path, colorReset)
	}
	for _, failure := range result.FailedFiles {
		fmt.Fprintf(w, "%s✗ %s: %v%s\n", colorRed, failure.OriginalPath, failure.Err, colorReset)
	}

	fmt.Fprintln(w)
	if result.Success {
		fmt.Fprintf(w, "%sRestored %d item(s) in %s%s\n",
			colorGreen, len(result.RestoredFiles),
			result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond), colorReset)
	} else {
		fmt.Fprintf(w, "%s%d restored, %d failed%s\n",
			colorYellow, len(result.RestoredFiles), len(result.FailedFiles), colorReset)
	}
}
