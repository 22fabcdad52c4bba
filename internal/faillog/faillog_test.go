package faillog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("FFGMIC_LOG_DIR", "")
	return Config{Enabled: true, Dir: t.TempDir(), MaxFiles: 20}
}

func TestSaveWritesLog(t *testing.T) {
	cfg := testConfig(t)

	path := Save("Error opening input\nInvalid data", "decode", cfg)
	if path == "" {
		t.Fatal("expected a saved log path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Invalid data") {
		t.Errorf("log content = %q", data)
	}
	if !strings.Contains(filepath.Base(path), "decode") {
		t.Errorf("log name should carry the stage: %q", path)
	}
}

func TestSaveSkipsEmptyText(t *testing.T) {
	cfg := testConfig(t)
	if path := Save("  \n", "encode", cfg); path != "" {
		t.Errorf("empty stderr should not be saved, got %q", path)
	}
}

func TestSaveDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Enabled = false
	if path := Save("boom", "decode", cfg); path != "" {
		t.Errorf("disabled faillog should not save, got %q", path)
	}
}

func TestSaveEnvDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FFGMIC_LOG_DIR", dir)

	cfg := Config{Enabled: true, Dir: "/nonexistent", MaxFiles: 20}
	path := Save("boom", "encode", cfg)
	if filepath.Dir(path) != dir {
		t.Errorf("saved to %q, want dir %q", path, dir)
	}
}

func TestRotation(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxFiles = 3

	// Pre-seed more logs than the cap, with ordered timestamp prefixes.
	for i := 0; i < 5; i++ {
		name := filepath.Join(cfg.Dir, string(rune('1'+i))+"000-decode.log")
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if path := Save("boom", "decode", cfg); path == "" {
		t.Fatal("expected a saved log path")
	}

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("kept %d logs, want 3", len(entries))
	}
}
