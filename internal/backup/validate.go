package backup

import (
	"os"
)

// Validate checks every manifest entry's backup payload against the
// manifest: the payload must exist, and for files its on-disk size must
// equal the size recorded at capture time. Original paths are never
// touched; this validates the archive, not the live targets.
//
// Validate is a pure function of the manifest and the set directory's
// contents, safe to call repeatedly and concurrently with reads. It
// returns an error only when the manifest itself cannot be loaded.
func (s *Set) Validate() (*ValidationReport, error) {
	manifest, err := loadManifest(s.dir)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{Valid: true}

	for _, entry := range manifest.Entries {
		report.EntriesChecked++

		info, err := os.Stat(s.resolveBackupPath(entry))
		if err != nil {
			report.Valid = false
			report.MissingFiles = append(report.MissingFiles, entry.BackupPath)
			continue
		}

		// Directory payloads are verified by existence only.
		if info.IsDir() {
			continue
		}

		if info.Size() != entry.FileSize {
			report.Valid = false
			report.SizeMismatches = append(report.SizeMismatches, entry.BackupPath)
		}
	}

	return report, nil
}
