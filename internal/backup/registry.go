package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ListSets enumerates the backup sets under the manager's root directory,
// newest first. The fixed-width timestamp naming makes lexicographic order
// chronological, so sets are sorted by directory name descending.
//
// Sets with an unreadable manifest still appear, with Entries set to -1
// and CreatedAt taken from the directory's modification time.
func (m *Manager) ListSets() ([]SetSummary, error) {
	dirEntries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupSets
		}
		return nil, errors.Wrapf(err, "reading backup root %s", m.rootDir)
	}

	summaries := make([]SetSummary, 0, len(dirEntries))

	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}

		dir := filepath.Join(m.rootDir, de.Name())
		summary := SetSummary{
			Path:    dir,
			Name:    de.Name(),
			Entries: -1,
		}

		if manifest, err := loadManifest(dir); err == nil {
			summary.Entries = len(manifest.Entries)
			if created, err := manifest.CreatedAt(); err == nil {
				summary.CreatedAt = created
			}
		}

		if summary.CreatedAt.IsZero() {
			if info, err := de.Info(); err == nil {
				summary.CreatedAt = info.ModTime()
			}
		}

		summaries = append(summaries, summary)
	}

	if len(summaries) == 0 {
		return nil, ErrNoBackupSets
	}

	slices.SortFunc(summaries, func(a, b SetSummary) int {
		return strings.Compare(b.Name, a.Name)
	})

	return summaries, nil
}

// RemoveSet recursively deletes a backup set directory. Unless force is
// set, the manager's interactive confirmation must approve the deletion.
//
// The returned bool is true iff the directory is absent afterwards,
// including the trivial case where it never existed. A declined
// confirmation returns (false, nil).
func (m *Manager) RemoveSet(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}

	if !force && !m.confirm(fmt.Sprintf("Remove backup set %s?", path)) {
		m.logger.Info("removal declined", "path", path)
		return false, nil
	}

	if err := os.RemoveAll(path); err != nil {
		return false, errors.Wrapf(err, "removing %s", path)
	}

	_, err := os.Stat(path)
	gone := os.IsNotExist(err)
	if gone {
		m.logger.Info("removed backup set", "path", path)
	}
	return gone, nil
}

// Prune deletes all but the keep newest backup sets under the root and
// returns how many were removed. Pruning is an explicit retention
// operation, so no per-set confirmation is asked.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, errors.New("keep must be non-negative")
	}

	summaries, err := m.ListSets()
	if err != nil {
		if errors.Is(err, ErrNoBackupSets) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for i := keep; i < len(summaries); i++ {
		gone, err := m.RemoveSet(summaries[i].Path, true)
		if err != nil {
			return removed, errors.Wrapf(err, "pruning %s", summaries[i].Name)
		}
		if gone {
			removed++
		}
	}

	return removed, nil
}
