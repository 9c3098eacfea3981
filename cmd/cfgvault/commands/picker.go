package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/pkeller/cfgvault/internal/backup"
	"github.com/pkeller/cfgvault/internal/logging"
)

// errPickerAborted is returned when the user quits the interactive picker.
var errPickerAborted = errors.New("no backup set selected")

// resolveSetDir turns a command argument into a backup set directory.
// A path-like argument (absolute, or containing a separator) is used as
// given; a bare name is resolved under the backup root. With no argument,
// an interactive picker is shown on a TTY, otherwise the most recent set
// is used.
func resolveSetDir(mgr *backup.Manager, arg string) (string, error) {
	if arg != "" {
		if filepath.IsAbs(arg) || strings.ContainsRune(arg, filepath.Separator) {
			return arg, nil
		}
		return filepath.Join(mgr.RootDir(), arg), nil
	}

	summaries, err := mgr.ListSets()
	if err != nil {
		return "", err
	}

	if logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stderr) {
		return pickSet(summaries)
	}

	// Non-interactive: ListSets returns newest first.
	return summaries[0].Path, nil
}

func pickSet(summaries []backup.SetSummary) (string, error) {
	idx, err := fuzzyfinder.Find(
		summaries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", summaries[i].Name, entryCount(summaries[i]))
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			s := summaries[i]
			return fmt.Sprintf("Set: %s\nPath: %s\nCreated: %s\nEntries: %s",
				s.Name,
				s.Path,
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				entryCount(s),
			)
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errPickerAborted
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}

	return summaries[idx].Path, nil
}

func entryCount(s backup.SetSummary) string {
	if s.Entries < 0 {
		return "manifest unreadable"
	}
	if s.Entries == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", s.Entries)
}
