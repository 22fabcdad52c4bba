package initcmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	t.Setenv("FFGMIC_CONFIG", path)

	if err := Run(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "width_scale = 178") {
		t.Errorf("defaults missing from written config:\n%s", content)
	}
	if !strings.Contains(content, "ffmpeg") {
		t.Errorf("paths missing from written config:\n%s", content)
	}
}

func TestRunRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("FFGMIC_CONFIG", path)
	if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(nil); err == nil {
		t.Fatal("expected error for existing config")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Error("existing config was clobbered")
	}
}

func TestRunForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("FFGMIC_CONFIG", path)
	if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run([]string{"--force"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "width_scale") {
		t.Error("config not rewritten with --force")
	}
}
