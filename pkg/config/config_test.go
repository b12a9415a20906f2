package config

import (
	"strings"
	"testing"
)

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save(&Config{Taskrc: "/work/custom.taskrc"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Taskrc != "/work/custom.taskrc" {
		t.Errorf("Taskrc = %q, want %q", cfg.Taskrc, "/work/custom.taskrc")
	}
}

func TestLoadWithoutFileFallsBackToDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.HasSuffix(cfg.Taskrc, ".taskrc") {
		t.Errorf("Expected the default ~/.taskrc, got %q", cfg.Taskrc)
	}
}
