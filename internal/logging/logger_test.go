package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggingIsNoop(t *testing.T) {
	Configure(Options{Enabled: false})
	defer Configure(Options{})

	log := Get(CategoryStore)
	// Must not panic and must not create files.
	log.Infof("hello %s", "world")
}

func TestCategoryFilesCreated(t *testing.T) {
	dir := t.TempDir()
	Configure(Options{Enabled: true, Dir: dir, Level: "debug"})
	defer Configure(Options{})

	Get(CategoryResolve).Infow("pass complete", "pass", "dynamic")
	Get(CategoryResolve).Debugf("detail %d", 42)
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "resolve.log"))
	if err != nil {
		t.Fatalf("reading category log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "pass complete") {
		t.Errorf("log missing info line: %q", text)
	}
	if !strings.Contains(text, "detail 42") {
		t.Errorf("log missing debug line: %q", text)
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	Configure(Options{Enabled: true, Dir: dir, Level: "warn"})
	defer Configure(Options{})

	Get(CategoryCLI).Infof("should be filtered")
	Get(CategoryCLI).Warnf("should appear")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "cli.log"))
	if err != nil {
		t.Fatalf("reading category log: %v", err)
	}
	if strings.Contains(string(data), "should be filtered") {
		t.Error("info line not filtered at warn level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("warn line missing")
	}
}

func TestGetReturnsSameLogger(t *testing.T) {
	Configure(Options{})
	if Get(CategoryToken) != Get(CategoryToken) {
		t.Error("Get should cache per-category loggers")
	}
}
