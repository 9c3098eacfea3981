package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestManifest_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	original := &Manifest{
		BackupDate:  "2024-06-01 02:00:00",
		BackupPath:  dir,
		ToolVersion: "1.2.3",
		Hostname:    "workstation",
		Username:    "alice",
		Entries: []Entry{
			{
				OriginalPath: "/home/alice/.gitconfig",
				BackupPath:   "gitconfig.backup",
				BackupTime:   "2024-06-01 02:00:01",
				FileSize:     128,
			},
		},
	}

	if err := saveManifest(dir, original); err != nil {
		t.Fatalf("saveManifest() error: %v", err)
	}

	loaded, err := loadManifest(dir)
	if err != nil {
		t.Fatalf("loadManifest() error: %v", err)
	}

	if loaded.BackupDate != original.BackupDate ||
		loaded.Hostname != original.Hostname ||
		loaded.Username != original.Username ||
		loaded.ToolVersion != original.ToolVersion {
		t.Errorf("metadata did not round-trip: %+v", loaded)
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0] != original.Entries[0] {
		t.Errorf("entries did not round-trip: %+v", loaded.Entries)
	}
}

func TestManifest_EmptyEntriesSerializeAsList(t *testing.T) {
	dir := t.TempDir()

	if err := saveManifest(dir, &Manifest{BackupDate: "2024-01-01 00:00:00"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"files": null`) {
		t.Error("empty entries serialized as null, want []")
	}
}

func TestManifest_CreatedAt(t *testing.T) {
	m := &Manifest{BackupDate: "2024-06-01 02:00:00"}
	created, err := m.CreatedAt()
	if err != nil {
		t.Fatalf("CreatedAt() error: %v", err)
	}
	if created.Year() != 2024 || created.Month() != 6 {
		t.Errorf("CreatedAt() = %v", created)
	}

	bad := &Manifest{BackupDate: "June 1st"}
	if _, err := bad.CreatedAt(); !errors.Is(err, ErrManifestParse) {
		t.Errorf("error = %v, want ErrManifestParse", err)
	}
}

func TestProbeWritable_ReadOnlyTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	path := filepath.Join(t.TempDir(), "locked")
	if err := os.WriteFile(path, []byte("x"), 0o400); err != nil {
		t.Fatal(err)
	}

	if err := probeWritable(path); err == nil {
		t.Error("expected probe to fail on read-only file")
	}
}

func TestRestore_ReadOnlyTargetReportsBusy(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	m := newTestManager(t)
	set, err := m.CreateSet("")
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(t.TempDir(), "conf")
	writeFile(t, src, "content")
	if _, err := set.BackupItem(src, ""); err != nil {
		t.Fatal(err)
	}

	if err := os.Chmod(src, 0o400); err != nil {
		t.Fatal(err)
	}

	result := m.Restore(set.Dir(), RestoreOptions{})

	if result.Success {
		t.Error("Success = true, want false")
	}
	if len(result.FailedFiles) != 1 {
		t.Fatalf("FailedFiles = %v, want 1", result.FailedFiles)
	}
	if !errors.Is(result.FailedFiles[0].Err, ErrTargetBusy) {
		t.Errorf("err = %v, want ErrTargetBusy", result.FailedFiles[0].Err)
	}
}
