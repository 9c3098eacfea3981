package backup

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestName is the fixed file name of the descriptor inside every backup set.
const ManifestName = "backup-manifest.json"

// BackupSuffix is appended to an item's base name when no override name is given.
const BackupSuffix = ".backup"

// Time layouts used on disk. Set directory names use the fixed-width
// setIDFormat so lexicographic order equals chronological order.
const (
	setIDFormat        = "20060102_150405"
	manifestTimeFormat = "2006-01-02 15:04:05"
)

// Version is set at build time via ldflags and recorded in every manifest.
var Version = "dev"

// Sentinel errors for backup operations.
var (
	// ErrNotFound indicates a source item, backup payload, or manifest is missing.
	ErrNotFound = errors.New("not found")

	// ErrManifestParse indicates a manifest exists but could not be decoded.
	ErrManifestParse = errors.New("manifest unreadable")

	// ErrSizeMismatch indicates a post-copy size verification failed.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrTargetBusy indicates a restore target is locked by another process.
	ErrTargetBusy = errors.New("target busy")

	// ErrValidationFailed indicates integrity validation found missing or
	// corrupt archive members.
	ErrValidationFailed = errors.New("backup set failed validation")

	// ErrNoBackupSets indicates no backup sets exist under the root directory.
	ErrNoBackupSets = errors.New("no backup sets found")

	// ErrEntryOutsideSet indicates an entry's backup path resolves outside
	// its backup set directory.
	ErrEntryOutsideSet = errors.New("entry backup path outside backup set")
)

// Manifest is the JSON descriptor stored as backup-manifest.json in each
// backup set directory. It round-trips losslessly through encoding/json.
type Manifest struct {
	// BackupDate is the set's creation time, "2006-01-02 15:04:05".
	BackupDate string `json:"backup_date"`

	// BackupPath is the backup set directory the manifest describes.
	BackupPath string `json:"backup_path"`

	// ToolVersion is the cfgvault version that created the set.
	ToolVersion string `json:"tool_version"`

	// Hostname and Username identify where the backup was captured.
	// Informational only.
	Hostname string `json:"hostname"`
	Username string `json:"username"`

	// Entries lists backed up items in capture order. Entries are only
	// ever appended, never removed or reordered.
	Entries []Entry `json:"files"`
}

// Entry describes one backed up item.
type Entry struct {
	// OriginalPath is the absolute path the item was captured from.
	OriginalPath string `json:"original_path"`

	// BackupPath is the payload location, relative to the set directory
	// (or absolute, for sets written by other tooling).
	BackupPath string `json:"backup_path"`

	// BackupTime is when the item was captured, "2006-01-02 15:04:05".
	BackupTime string `json:"backup_time"`

	// FileSize is the item's byte size at capture time. Zero for
	// directory entries, whose copies are verified by existence only.
	FileSize int64 `json:"file_size"`
}

// ValidationReport is the result of validating a backup set against its
// manifest. It describes the archive only; original paths are never touched.
type ValidationReport struct {
	// Valid is true iff no entry is missing or size-mismatched.
	Valid bool

	// MissingFiles lists backup paths of entries whose payload is absent.
	MissingFiles []string

	// SizeMismatches lists backup paths whose on-disk size differs from
	// the size recorded at capture time.
	SizeMismatches []string

	// EntriesChecked is the number of manifest entries examined.
	EntriesChecked int
}

// RestoreOptions controls a restore invocation.
type RestoreOptions struct {
	// Patterns selects entries whose original path contains at least one
	// of these substrings. Empty means restore everything.
	Patterns []string

	// ValidateFirst runs integrity validation before restoring; any
	// finding aborts the whole restore.
	ValidateFirst bool

	// RestorePoint captures the current state of every entry's original
	// path into a new backup set before restoring. Best effort: failures
	// are logged as warnings and never abort the restore.
	RestorePoint bool
}

// EntryFailure records a single entry that could not be restored.
type EntryFailure struct {
	// OriginalPath is the restore target that failed.
	OriginalPath string

	// Err is the reason, wrapping one of the sentinel errors where applicable.
	Err error
}

// RestoreResult is returned by every restore invocation. It is never
// persisted. Failures are collected here rather than returned as errors.
type RestoreResult struct {
	// Success is true iff no stage aborted and no entry failed.
	Success bool

	// RestoredFiles lists original paths restored, in manifest order.
	RestoredFiles []string

	// FailedFiles lists entries that failed, in manifest order.
	FailedFiles []EntryFailure

	// ValidationErrors lists problems found before any restore began
	// (missing/unparseable manifest, failed pre-validation).
	ValidationErrors []string

	// RestorePoint is the directory of the pre-restore snapshot set,
	// empty when none was requested or none could be created.
	RestorePoint string

	StartedAt  time.Time
	FinishedAt time.Time
}

// SetSummary describes one backup set for listings.
type SetSummary struct {
	// Path is the set directory.
	Path string

	// Name is the directory base name (the timestamp ID for derived sets).
	Name string

	// CreatedAt is the capture date from the manifest, falling back to
	// the directory modification time when the manifest is unreadable.
	CreatedAt time.Time

	// Entries is the manifest entry count, or -1 when unknown.
	Entries int
}
