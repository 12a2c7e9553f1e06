package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/superpong/config"
)

func TestNewDisabledIsNop(t *testing.T) {
	dir := t.TempDir()
	h, err := New(config.LoggingConfig{Enabled: false}, dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	if h.RunID == "" {
		t.Error("Expected run id even when disabled")
	}
	h.Logger.Info("dropped")
	if _, err := os.Stat(filepath.Join(dir, logDirName)); !os.IsNotExist(err) {
		t.Error("Expected no log directory when disabled")
	}
}

func TestNewWritesFileWithRunID(t *testing.T) {
	dir := t.TempDir()
	h, err := New(config.LoggingConfig{Enabled: true, Level: "debug", Format: "json", MaxSizeMB: 10}, dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	h.Logger.Info("scene switched")
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(h.Path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "scene switched") {
		t.Errorf("Expected message in log, got %q", data)
	}
	if !strings.Contains(string(data), h.RunID) {
		t.Error("Expected run id on every line")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Enabled: true, Level: "chatty"}, t.TempDir()); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, logDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}

	const maxMB = 1
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxMB*1024*1024+1), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := New(config.LoggingConfig{Enabled: true, Level: "info", MaxSizeMB: maxMB}, dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotatedFound := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxMB*1024*1024 {
		t.Errorf("Expected fresh log file, got %d bytes", info.Size())
	}
}
