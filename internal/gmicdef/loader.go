package gmicdef

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultCommandsText documents the built-in upscale command. It is used
// when no .gmic commands file can be found, so the tool keeps working on
// systems where G'MIC has never been run.
const DefaultCommandsText = `#@gui Upscale [Diffusion]:fx_upscale_smart,fx_upscale_smart_preview(0)
#@gui :Width=text("200%")
#@gui :Height=text("200%")
#@gui :Smoothness=float(2,0,20)
#@gui :Anisotropy=float(0.4,0,1)
#@gui :Sharpness=float(50,0,100)
#@gui :_=separator()
`

// DefaultDir returns the standard per-user G'MIC configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "gmic")
}

// FindLatest returns the most recently modified .gmic file in dir, or ""
// when the directory is missing or holds none.
func FindLatest(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var latest string
	var latestMod int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gmic") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = filepath.Join(dir, e.Name())
			latestMod = mod
		}
	}
	return latest
}

// Load reads annotation text from the newest .gmic file under dir, falling
// back to DefaultCommandsText when none is readable. The returned source is
// the file path, or "" for the built-in text. Missing commands files are a
// degraded mode, not an error: the registry is advisory.
func Load(dir string) (text, source string) {
	if dir == "" {
		dir = DefaultDir()
	}

	path := FindLatest(dir)
	if path == "" {
		logrus.WithField("dir", dir).Warn(
			"no .gmic commands file found; install gmic and run it once to generate one, using built-in definitions")
		return DefaultCommandsText, ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Warn("cannot read commands file, using built-in definitions")
		return DefaultCommandsText, ""
	}

	return string(data), path
}
