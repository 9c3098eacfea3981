package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureSet backs up the given file into a fresh set under the test root
// and returns the set's directory name.
func captureSet(t *testing.T, root, src string) string {
	t.Helper()

	var buf bytes.Buffer
	if err := runCreateWithWriter(&buf, []string{src}); err != nil {
		t.Fatalf("creating fixture set: %v", err)
	}

	sets, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) == 0 {
		t.Fatal("no backup set created")
	}
	return sets[len(sets)-1].Name()
}

func TestRestoreCommand_Metadata(t *testing.T) {
	if restoreCmd.Use != "restore [set]" {
		t.Errorf("Use = %q", restoreCmd.Use)
	}
	for _, flag := range []string{"match", "validate", "restore-point"} {
		if restoreCmd.Flags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}

func TestRunRestore_ByName(t *testing.T) {
	root := setupCommandTest(t)

	src := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(src, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}
	name := captureSet(t, root, src)

	if err := os.WriteFile(src, []byte("drifted"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runRestoreWithWriter(&buf, name); err != nil {
		t.Fatalf("runRestoreWithWriter() error = %v\noutput:\n%s", err, buf.String())
	}

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("restored content = %q, want %q", data, "original")
	}
	if !strings.Contains(buf.String(), src) {
		t.Errorf("output should list the restored path, got %q", buf.String())
	}
}

func TestRunRestore_NoArgUsesMostRecent(t *testing.T) {
	root := setupCommandTest(t)

	src := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(src, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}
	captureSet(t, root, src)

	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}

	// Buffers are not TTYs, so the picker is skipped.
	var buf bytes.Buffer
	if err := runRestoreWithWriter(&buf, ""); err != nil {
		t.Fatalf("runRestoreWithWriter() error = %v\noutput:\n%s", err, buf.String())
	}

	if _, err := os.Stat(src); err != nil {
		t.Errorf("file was not restored: %v", err)
	}
}

func TestRunRestore_NoSets(t *testing.T) {
	setupCommandTest(t)

	var buf bytes.Buffer
	if err := runRestoreWithWriter(&buf, ""); err == nil {
		t.Error("expected error when no backup sets exist")
	}
}

func TestRunRestore_FailureExitsNonZero(t *testing.T) {
	root := setupCommandTest(t)

	src := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(src, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}
	name := captureSet(t, root, src)

	// Delete the payload so the entry cannot be restored.
	if err := os.Remove(filepath.Join(root, name, "app.conf.backup")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runRestoreWithWriter(&buf, name); err == nil {
		t.Error("expected error when an entry fails to restore")
	}
	if !strings.Contains(buf.String(), "failed") {
		t.Errorf("output should report the failure, got %q", buf.String())
	}
}

func TestRunValidate_CleanAndCorrupt(t *testing.T) {
	root := setupCommandTest(t)

	src := filepath.Join(t.TempDir(), "app.conf")
	if err := os.WriteFile(src, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}
	name := captureSet(t, root, src)

	var buf bytes.Buffer
	if err := runValidateWithWriter(&buf, name); err != nil {
		t.Fatalf("validate of clean set failed: %v\noutput:\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "all valid") {
		t.Errorf("output = %q, want success summary", buf.String())
	}

	// Truncate the payload; validation must now fail.
	payload := filepath.Join(root, name, "app.conf.backup")
	if err := os.WriteFile(payload, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	if err := runValidateWithWriter(&buf, name); err == nil {
		t.Error("expected error for corrupt set")
	}
	if !strings.Contains(buf.String(), "size mismatch") {
		t.Errorf("output = %q, want size mismatch report", buf.String())
	}
}
