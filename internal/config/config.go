// Package config loads the tool's TOML configuration, merging the file
// over built-in defaults.
package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/gmic"
)

type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	GMIC     GMICConfig     `toml:"gmic"`
	Defaults DefaultsConfig `toml:"defaults"`
	Tracking TrackingConfig `toml:"tracking"`
	FailLog  FailLogConfig  `toml:"faillog"`
}

// PathsConfig names the external binaries.
type PathsConfig struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	GMIC    string `toml:"gmic"`
}

type GMICConfig struct {
	// CommandsDir is scanned for *.gmic command definition files.
	CommandsDir string `toml:"commands_dir"`
}

// DefaultsConfig holds the upscale filter parameters used when the CLI
// doesn't override them.
type DefaultsConfig struct {
	WidthScale  int     `toml:"width_scale"`
	HeightScale int     `toml:"height_scale"`
	Smoothness  int     `toml:"smoothness"`
	Anisotropy  float64 `toml:"anisotropy"`
	Sharpness   int     `toml:"sharpness"`
}

type TrackingConfig struct {
	DBPath string `toml:"db_path"`
}

type FailLogConfig struct {
	Enabled  bool   `toml:"enabled"`
	Dir      string `toml:"dir"`
	MaxFiles int    `toml:"max_files"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	opts := gmic.DefaultOptions()
	return &Config{
		Paths: PathsConfig{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
			GMIC:    "gmic",
		},
		GMIC: GMICConfig{
			CommandsDir: filepath.Join(home, ".config", "gmic"),
		},
		Defaults: DefaultsConfig{
			WidthScale:  opts.WidthScale,
			HeightScale: opts.HeightScale,
			Smoothness:  opts.Smoothness,
			Anisotropy:  opts.Anisotropy,
			Sharpness:   opts.Sharpness,
		},
		Tracking: TrackingConfig{
			DBPath: filepath.Join(home, ".local", "share", "ffmpeg-gmic-plus", "runs.db"),
		},
		FailLog: FailLogConfig{
			Enabled:  true,
			Dir:      filepath.Join(home, ".local", "share", "ffmpeg-gmic-plus", "logs"),
			MaxFiles: 20,
		},
	}
}

// Options converts the configured defaults into filter options.
func (c *Config) Options() gmic.Options {
	return gmic.Options{
		WidthScale:  c.Defaults.WidthScale,
		HeightScale: c.Defaults.HeightScale,
		Smoothness:  c.Defaults.Smoothness,
		Anisotropy:  c.Defaults.Anisotropy,
		Sharpness:   c.Defaults.Sharpness,
	}
}

// Load reads config from file, merging with defaults. Returns defaults if file missing.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path resolves the config file location.
func Path() string {
	if p := os.Getenv("FFGMIC_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "ffmpeg-gmic-plus", "config.toml")
}
