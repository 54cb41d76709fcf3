package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("converter.job.started", "candidates", 3)
	logger.Debug("converter.file.converted", "file", "a.bmp")

	output := buf.String()
	if !strings.Contains(output, "level=INFO") {
		t.Errorf("Expected INFO level, got: %s", output)
	}
	if !strings.Contains(output, "candidates=3") {
		t.Errorf("Expected attribute, got: %s", output)
	}
	if strings.Contains(output, "converter.file.converted") {
		t.Errorf("Expected debug line to be filtered, got: %s", output)
	}
}

func TestLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("converter.file.converted", "file", "a.bmp")

	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("Expected DEBUG line, got: %s", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyout.log")
	logger, f, err := OpenFile(path, false)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	logger.Warn("converter.file.skipped", "status", "SkippedEmpty")
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "status=SkippedEmpty") {
		t.Errorf("Expected log line in file, got: %s", data)
	}
}
