// Package faillog persists the stderr of failed pipeline stages so a run's
// post-mortem doesn't depend on scrollback.
package faillog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Config for failure log retention.
type Config struct {
	Enabled  bool
	Dir      string
	MaxFiles int
}

// DefaultConfig returns failure log defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Enabled:  true,
		Dir:      filepath.Join(home, ".local", "share", "ffmpeg-gmic-plus", "logs"),
		MaxFiles: 20,
	}
}

// Save writes stage stderr to a timestamped log file and returns its path,
// or "" when nothing was saved. Failures to save are silent: the log is a
// convenience, never a reason to fail harder.
func Save(text, stage string, cfg Config) string {
	if !cfg.Enabled || strings.TrimSpace(text) == "" {
		return ""
	}

	dir := cfg.Dir
	if envDir := os.Getenv("FFGMIC_LOG_DIR"); envDir != "" {
		dir = envDir
	}
	if dir == "" {
		dir = DefaultConfig().Dir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}

	filename := fmt.Sprintf("%d-%s.log", time.Now().Unix(), stage)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return ""
	}

	rotateFiles(dir, cfg.MaxFiles)

	return path
}

func rotateFiles(dir string, maxFiles int) {
	if maxFiles <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			logFiles = append(logFiles, e)
		}
	}
	if len(logFiles) <= maxFiles {
		return
	}

	// Timestamp-prefixed names sort chronologically.
	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].Name() < logFiles[j].Name()
	})
	for i := 0; i < len(logFiles)-maxFiles; i++ {
		os.Remove(filepath.Join(dir, logFiles[i].Name()))
	}
}
