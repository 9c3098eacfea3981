package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pkeller/cfgvault/internal/cli/prompt"
	"github.com/pkeller/cfgvault/internal/paths"
)

// Manager creates, restores, lists, and removes backup sets under a root
// directory. It is designed for single-process, sequential use: nothing
// protects a set's manifest against concurrent writers.
type Manager struct {
	rootDir  string
	hostname string
	username string
	logger   *slog.Logger
	confirm  func(question string) bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithRootDir sets the directory under which backup sets are created.
func WithRootDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.rootDir = dir
		}
	}
}

// WithIdentity overrides the host and user names recorded in manifests.
func WithIdentity(hostname, username string) Option {
	return func(m *Manager) {
		m.hostname = hostname
		m.username = username
	}
}

// WithLogger sets the logger used for observability. Logging never affects
// control flow; NewDiscard-style loggers are fine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConfirm replaces the interactive confirmation used by RemoveSet when
// force is not set. Primarily for tests and non-interactive callers.
func WithConfirm(confirm func(question string) bool) Option {
	return func(m *Manager) {
		if confirm != nil {
			m.confirm = confirm
		}
	}
}

// NewManager creates a backup Manager with the given options. Defaults:
// XDG data backup root, local host/user identity, slog default logger, and
// a stdin confirmation prompt.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:  paths.DefaultBackupRoot(),
		hostname: paths.Hostname(),
		username: paths.Username(),
		logger:   slog.Default(),
	}
	m.confirm = func(question string) bool {
		return prompt.NewConfirmer().Confirm(question)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RootDir returns the directory under which this manager creates backup sets.
func (m *Manager) RootDir() string {
	return m.rootDir
}

// Set is a handle to one backup set directory. A Set is exclusively owned
// by the process that created or opened it; manifest updates are
// read-modify-write with no cross-process locking.
type Set struct {
	dir string
}

// Dir returns the backup set directory.
func (s *Set) Dir() string {
	return s.dir
}

// Name returns the set's directory base name (the timestamp ID for sets
// with derived names).
func (s *Set) Name() string {
	return filepath.Base(s.dir)
}

// Manifest loads the set's current manifest from disk.
func (s *Set) Manifest() (*Manifest, error) {
	return loadManifest(s.dir)
}

// CreateSet creates a new backup set directory and writes its initial
// manifest with an empty entry list and capture metadata.
//
// When explicitPath is empty the directory is derived as
// <root>/<yyyyMMdd_HHmmss>; if that name is already taken a numeric suffix
// is appended so two sets created within the same second stay distinct.
// On failure no backup set was created, though a partially initialized
// directory may remain.
func (m *Manager) CreateSet(explicitPath string) (*Set, error) {
	now := time.Now()

	dir := explicitPath
	if dir == "" {
		dir = filepath.Join(m.rootDir, now.Format(setIDFormat))
		for n := 1; ; n++ {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				break
			}
			dir = filepath.Join(m.rootDir, fmt.Sprintf("%s_%d", now.Format(setIDFormat), n))
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating backup set directory %s", dir)
	}

	manifest := &Manifest{
		BackupDate:  now.Format(manifestTimeFormat),
		BackupPath:  dir,
		ToolVersion: Version,
		Hostname:    m.hostname,
		Username:    m.username,
		Entries:     make([]Entry, 0),
	}

	if err := saveManifest(dir, manifest); err != nil {
		return nil, err
	}

	m.logger.Debug("created backup set", "dir", dir)
	return &Set{dir: dir}, nil
}

// OpenSet opens an existing backup set. The directory must contain a
// loadable manifest.
func (m *Manager) OpenSet(dir string) (*Set, error) {
	if _, err := loadManifest(dir); err != nil {
		return nil, err
	}
	return &Set{dir: dir}, nil
}

// BackupItem captures one file or directory tree into the set and appends
// a manifest entry for it. The payload is named after the item's base name
// with a ".backup" suffix unless overrideName is given; duplicate names
// within a set silently overwrite each other on disk.
//
// Backing up the same original path twice appends a second entry; the
// later capture wins on disk and during restore.
func (s *Set) BackupItem(srcPath, overrideName string) (*Entry, error) {
	abs, err := filepath.Abs(srcPath)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", srcPath)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", abs)
		}
		return nil, errors.Wrapf(err, "stat %s", abs)
	}

	name := overrideName
	if name == "" {
		name = filepath.Base(abs) + BackupSuffix
	}

	if err := CopyItem(abs, filepath.Join(s.dir, name)); err != nil {
		return nil, err
	}

	var size int64
	if !info.IsDir() {
		size = info.Size()
	}

	entry := Entry{
		OriginalPath: abs,
		BackupPath:   name,
		BackupTime:   time.Now().Format(manifestTimeFormat),
		FileSize:     size,
	}

	if err := s.AppendEntry(entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// AppendEntry re-reads the manifest, appends the entry, and rewrites the
// whole manifest file. Entries whose backup path would resolve outside the
// set directory are rejected.
func (s *Set) AppendEntry(entry Entry) error {
	if !s.containsBackupPath(entry) {
		return errors.Wrapf(ErrEntryOutsideSet, "%s", entry.BackupPath)
	}

	manifest, err := loadManifest(s.dir)
	if err != nil {
		return err
	}

	manifest.Entries = append(manifest.Entries, entry)
	return saveManifest(s.dir, manifest)
}

// resolveBackupPath returns the absolute payload location for an entry.
// Relative backup paths are resolved against the set directory.
func (s *Set) resolveBackupPath(entry Entry) string {
	if filepath.IsAbs(entry.BackupPath) {
		return entry.BackupPath
	}
	return filepath.Join(s.dir, entry.BackupPath)
}

// containsBackupPath reports whether an entry's payload resolves inside
// the set directory.
func (s *Set) containsBackupPath(entry Entry) bool {
	rel, err := filepath.Rel(s.dir, s.resolveBackupPath(entry))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
