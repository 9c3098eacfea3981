package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pkeller/cfgvault/internal/backup"
	cliErrors "github.com/pkeller/cfgvault/internal/errors"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [set]",
	Short: "Check a backup set's integrity",
	Long: `Check every entry of a backup set against its manifest.

An entry is valid when its payload exists in the set directory and, for
files, its size matches the size recorded at capture time. Directory
payloads are verified by existence only. The originals are never touched.

The set may be named by its timestamp ID or by path. With no argument,
an interactive picker is shown on a terminal; otherwise the most recent
set is checked. Exits non-zero when validation finds a problem.`,
	Example: `  # Validate the most recent set
  cfgvault validate

  # Validate a specific set
  cfgvault validate 20240601_020000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	return runValidateWithWriter(cmd.OutOrStdout(), arg)
}

func runValidateWithWriter(w io.Writer, arg string) error {
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

	set, err := mgr.OpenSet(setDir)
	if err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			return cliErrors.NewUserError(err, "see available sets with: cfgvault list")
		}
		return err
	}

	report, err := set.Validate()
	if err != nil {
		return err
	}

	printValidationReport(w, setDir, report)

	if !report.Valid {
		return cliErrors.NewSystemError(
			errors.Wrapf(backup.ErrValidationFailed, "%s", setDir), "")
	}
	return nil
}

func printValidationReport(w io.Writer, setDir string, report *backup.ValidationReport) {
	fmt.Fprintf(w, "%sValidating %s%s\n\n", colorBold, setDir, colorReset)

	for _, path := range report.MissingFiles {
		fmt.Fprintf(w, "%s✗ missing: %s%s\n", colorRed, path, colorReset)
	}
	for _, path := range report.SizeMismatches {
		fmt.Fprintf(w, "%s✗ size mismatch: %s%s\n", colorRed, path, colorReset)
	}

	if report.Valid {
		fmt.Fprintf(w, "%s✓ %d entries checked, all valid%s\n",
			colorGreen, report.EntriesChecked, colorReset)
	} else {
		fmt.Fprintf(w, "\n%s%d entries checked, %d missing, %d size mismatches%s\n",
			colorYellow, report.EntriesChecked,
			len(report.MissingFiles), len(report.SizeMismatches), colorReset)
	}
}
