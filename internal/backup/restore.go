package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pkeller/cfgvault/internal/logging"
)

// Restore restores some or all entries of the backup set at setDir back to
// their original paths. It never returns a Go error: every failure is
// collected into the returned RestoreResult.
//
// Stages run in strict order. Set-level problems (missing or unparseable
// manifest, failed pre-validation) abort the whole operation with
// ValidationErrors populated and no restore attempted. Per-entry failures
// are recorded and do not stop later entries; there is no rollback. The
// restore-point stage is best effort and only ever logs warnings.
func (m *Manager) Restore(setDir string, opts RestoreOptions) *RestoreResult {
	result := &RestoreResult{StartedAt: time.Now()}
	defer func() {
		result.FinishedAt = time.Now()
		result.Success = len(result.ValidationErrors) == 0 && len(result.FailedFiles) == 0
	}()

	// Stage 1: load.
	set, err := m.OpenSet(setDir)
	if err != nil {
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		return result
	}
	manifest, err := set.Manifest()
	if err != nil {
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		return result
	}

	// Stage 2: optional pre-validation. A known-corrupt archive is never
	// partially restored.
	if opts.ValidateFirst {
		report, err := set.Validate()
		if err != nil {
			result.ValidationErrors = append(result.ValidationErrors, err.Error())
			return result
		}
		if !report.Valid {
			for _, f := range report.MissingFiles {
				result.ValidationErrors = append(result.ValidationErrors,
					fmt.Sprintf("missing backup file: %s", f))
			}
			for _, f := range report.SizeMismatches {
				result.ValidationErrors = append(result.ValidationErrors,
					fmt.Sprintf("size mismatch: %s", f))
			}
			m.logger.Error("pre-restore validation failed",
				"set", setDir,
				"missing", len(report.MissingFiles),
				"mismatched", len(report.SizeMismatches))
			return result
		}
	}

	// Stage 3: optional restore point.
	if opts.RestorePoint {
		result.RestorePoint = m.createRestorePoint(manifest)
	}

	// Stage 4: selective filter.
	selected := manifest.Entries
	if len(opts.Patterns) > 0 {
		selected = make([]Entry, 0, len(manifest.Entries))
		for _, entry := range manifest.Entries {
			if matchesAny(entry.OriginalPath, opts.Patterns) {
				selected = append(selected, entry)
			}
		}
	}

	// Stage 5: per-entry restore, in manifest order.
	for _, entry := range selected {
		if err := m.restoreEntry(set, entry); err != nil {
			m.logger.Error("restore failed", "path", entry.OriginalPath, "err", err)
			result.FailedFiles = append(result.FailedFiles, EntryFailure{
				OriginalPath: entry.OriginalPath,
				Err:          err,
			})
			continue
		}
		result.RestoredFiles = append(result.RestoredFiles, entry.OriginalPath)
	}

	if len(result.FailedFiles) == 0 {
		logging.Success(m.logger, "restore complete",
			"set", setDir, "restored", len(result.RestoredFiles))
	}

	return result
}

// createRestorePoint snapshots the current live state of every entry's
// original path into a new backup set. Only paths that currently exist
// are captured. All failures are downgraded to warnings.
func (m *Manager) createRestorePoint(manifest *Manifest) string {
	rp, err := m.CreateSet("")
	if err != nil {
		m.logger.Warn("could not create restore point", "err", err)
		return ""
	}

	for _, entry := range manifest.Entries {
		if _, err := os.Stat(entry.OriginalPath); err != nil {
			continue
		}
		if _, err := rp.BackupItem(entry.OriginalPath, ""); err != nil {
			m.logger.Warn("restore point capture failed",
				"path", entry.OriginalPath, "err", err)
		}
	}

	m.logger.Info("created restore point", "dir", rp.Dir())
	return rp.Dir()
}

// restoreEntry restores a single entry: the payload must exist, parent
// directories of the original path are created, a busy target fails the
// entry without aborting the run, and the copy is size-verified.
func (m *Manager) restoreEntry(set *Set, entry Entry) error {
	src := set.resolveBackupPath(entry)

	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "backup file %s", src)
		}
		return errors.Wrapf(err, "stat %s", src)
	}

	if err := os.MkdirAll(filepath.Dir(entry.OriginalPath), 0o755); err != nil {
		return errors.Wrapf(err, "creating parent directory for %s", entry.OriginalPath)
	}

	if info, err := os.Stat(entry.OriginalPath); err == nil && !info.IsDir() {
		if err := probeWritable(entry.OriginalPath); err != nil {
			return errors.Wrapf(ErrTargetBusy, "%s: %v", entry.OriginalPath, err)
		}
	}

	if err := CopyItem(src, entry.OriginalPath); err != nil {
		return err
	}

	dstInfo, err := os.Stat(entry.OriginalPath)
	if err != nil {
		return errors.Wrapf(err, "verifying %s", entry.OriginalPath)
	}
	if !srcInfo.IsDir() && dstInfo.Size() != srcInfo.Size() {
		return errors.Wrapf(ErrSizeMismatch, "%s: restored %d bytes, backup %d bytes",
			entry.OriginalPath, dstInfo.Size(), srcInfo.Size())
	}

	m.logger.Debug("restored", "path", entry.OriginalPath)
	return nil
}

// probeWritable checks that an existing target can be opened for writing.
// The file is opened exclusively for write and immediately closed; a
// failure indicates the target is locked or otherwise not writable.
func probeWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// matchesAny reports whether any pattern is a substring of path.
// Case sensitivity follows the host filesystem's conventions, which for
// plain substring matching means byte-wise comparison.
func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
