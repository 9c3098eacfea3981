package backup

import (
	"encoding/json"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pkeller/cfgvault/pkg/fileutil"
)

// manifestPath returns the manifest file location for a set directory.
func manifestPath(dir string) string {
	return filepath.Join(dir, ManifestName)
}

// loadManifest reads and decodes the manifest of the backup set at dir.
// A missing manifest wraps ErrNotFound; a present but undecodable one
// wraps ErrManifestParse.
func loadManifest(dir string) (*Manifest, error) {
	path := manifestPath(dir)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "manifest %s", path)
		}
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(ErrManifestParse, "%s: %v", path, err)
	}

	return &m, nil
}

// saveManifest rewrites the whole manifest file atomically.
func saveManifest(dir string, m *Manifest) error {
	if m.Entries == nil {
		m.Entries = make([]Entry, 0)
	}
	return errors.Wrap(fileutil.AtomicWriteJSON(manifestPath(dir), m), "writing manifest")
}

// CreatedAt parses the manifest's capture date in the local time zone.
func (m *Manifest) CreatedAt() (time.Time, error) {
	t, err := time.ParseInLocation(manifestTimeFormat, m.BackupDate, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrManifestParse, "backup_date %q", m.BackupDate)
	}
	return t, nil
}
