package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("filtered")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message should be visible: %q", out)
	}
}

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	Success(logger, "restored", "files", 3)

	out := buf.String()
	if !strings.Contains(out, "OK") {
		t.Errorf("success level should render as OK: %q", out)
	}
	if !strings.Contains(out, "restored") {
		t.Errorf("output missing message: %q", out)
	}
}

func TestSuccess_FilteredBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	Success(logger, "restored")

	if buf.Len() != 0 {
		t.Errorf("success should be filtered at warn level: %q", buf.String())
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &buf,
	})

	logger.WithGroup("restore").With("set", "20240101_010000").Info("starting")

	out := buf.String()
	if !strings.Contains(out, "restore.set=20240101_010000") {
		t.Errorf("expected grouped attribute, got %q", out)
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	// Must not panic and must accept all levels
	logger.Debug("x")
	logger.Error("x")
}
