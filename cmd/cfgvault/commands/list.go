package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pkeller/cfgvault/internal/backup"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup sets",
	Long: `List the backup sets under the backup root, newest first.

Sets whose manifest cannot be read are still listed; their entry count
shows as "?" and their creation time falls back to the directory's
modification time.`,
	Example: `  cfgvault list

  # Machine-readable output
  cfgvault list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	return runListWithWriter(cmd.OutOrStdout())
}

func runListWithWriter(w io.Writer) error {
	summaries, err := newManager().ListSets()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupSets) {
			if listJSON {
				fmt.Fprintln(w, "[]")
				return nil
			}
			fmt.Fprintln(w, "No backup sets found.")
			return nil
		}
		return err
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(summaries), "encoding listing")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCREATED\tENTRIES")
	for _, s := range summaries {
		entries := "?"
		if s.Entries >= 0 {
			entries = fmt.Sprintf("%d", s.Entries)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			s.Name, s.CreatedAt.Format("2006-01-02 15:04:05"), entries)
	}
	return tw.Flush()
}
