package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "parse.log")

	log, closer, err := New(Options{Console: &console, File: logFile})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.WithField("path", "/videos/broken.mp4").Warn("Probe failed")
	log.Debug("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(console.String(), "Probe failed") {
		t.Errorf("console output missing message: %q", console.String())
	}
	if strings.Contains(console.String(), "time=") {
		t.Errorf("console output should not carry timestamps: %q", console.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !regexp.MustCompile(`time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`).MatchString(content) {
		t.Errorf("log file missing timestamp: %q", content)
	}
	if !strings.Contains(content, "level=warning") || !strings.Contains(content, "/videos/broken.mp4") {
		t.Errorf("log file missing level or fields: %q", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Errorf("debug entry should be filtered: %q", content)
	}
}

func TestNewAppendsToExistingFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "parse.log")
	if err := os.WriteFile(logFile, []byte("previous run\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	log, closer, err := New(Options{Console: &bytes.Buffer{}, File: logFile})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("second run")
	_ = closer.Close()

	data, _ := os.ReadFile(logFile)
	if !strings.HasPrefix(string(data), "previous run\n") || !strings.Contains(string(data), "second run") {
		t.Errorf("expected appended log, got %q", data)
	}
}

func TestNewLevels(t *testing.T) {
	var console bytes.Buffer
	log, _, err := New(Options{Console: &console, Level: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Debug("visible")
	if !strings.Contains(console.String(), "visible") {
		t.Errorf("expected debug output, got %q", console.String())
	}

	if _, _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
