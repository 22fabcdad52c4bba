// Package cli wires configuration, the command registry, and the frame
// streaming pipeline behind the command-line surface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/config"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/display"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/engine"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/faillog"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/gmic"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/gmicdef"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/initcmd"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/tracking"
)

const version = "0.1.0"

// Exit codes: 0 success, 1 configuration or registry failure, 2 probe or
// subprocess failure.
const (
	exitOK       = 0
	exitConfig   = 1
	exitPipeline = 2
)

// Run is the main entry point. Returns the process exit code.
func Run(args []string) int {
	flags, remaining, err := ParseFlags(args[1:])
	if err != nil {
		display.PrintError(err.Error())
		return exitConfig
	}

	if flags.Version {
		fmt.Printf("ffmpeg-gmic-plus v%s\n", version)
		return exitOK
	}
	if flags.Help {
		printUsage()
		return exitOK
	}

	setupLogging(flags.Verbose)

	// Built-in commands
	if len(remaining) > 0 {
		switch remaining[0] {
		case "init":
			if err := initcmd.Run(remaining[1:]); err != nil {
				display.PrintError(err.Error())
				return exitConfig
			}
			return exitOK

		case "config":
			return runConfig()

		case "commands":
			return runCommands()

		case "history":
			tracker, err := lazyTracker()
			if err != nil {
				display.PrintError(err.Error())
				return exitConfig
			}
			if tracker != nil {
				defer tracker.Close()
			}
			if err := display.RunHistory(tracker, remaining[1:]); err != nil {
				display.PrintError(err.Error())
				return exitConfig
			}
			return exitOK

		default:
			display.PrintError(fmt.Sprintf("unknown command %q", remaining[0]))
			return exitConfig
		}
	}

	if flags.Input == "" || flags.Output == "" {
		printUsage()
		return exitConfig
	}

	return runUpscale(flags)
}

func runUpscale(flags Flags) int {
	cfg, err := config.Load()
	if err != nil {
		display.PrintError(fmt.Sprintf("load config: %v", err))
		return exitConfig
	}

	// The registry is built once up front and is purely advisory: it tells
	// us what the installed G'MIC advertises, the pipeline never consults it.
	text, source := gmicdef.Load(cfg.GMIC.CommandsDir)
	reg, diags := gmicdef.Parse(text)
	for _, d := range diags {
		display.PrintWarning("commands file: " + d.String())
	}
	logrus.WithFields(logrus.Fields{
		"source":   sourceName(source),
		"commands": reg.Len(),
	}).Debug("command registry built")
	if cmd := reg.Get("upscale [diffusion]"); cmd != nil {
		logrus.WithField("functions", cmd.Functions).Debug("upscale command available")
	}

	opts := cfg.Options()
	if flags.WidthScale != nil {
		opts.WidthScale = *flags.WidthScale
	}
	if flags.HeightScale != nil {
		opts.HeightScale = *flags.HeightScale
	}
	if flags.Smoothness != nil {
		opts.Smoothness = *flags.Smoothness
	}
	if flags.Anisotropy != nil {
		opts.Anisotropy = *flags.Anisotropy
	}
	if flags.Sharpness != nil {
		opts.Sharpness = *flags.Sharpness
	}

	tracker, err := lazyTracker()
	if err != nil {
		logrus.WithError(err).Warn("run tracking disabled")
	}
	if tracker != nil {
		defer tracker.Close()
	}

	filterEngine := gmic.NewCLIEngine(cfg.Paths.GMIC)
	defer filterEngine.Close()

	p := &engine.Pipeline{
		FFmpeg:  cfg.Paths.FFmpeg,
		FFprobe: cfg.Paths.FFprobe,
		Engine:  filterEngine,
		Tracker: tracker,
		FailLog: faillog.Config{
			Enabled:  cfg.FailLog.Enabled,
			Dir:      cfg.FailLog.Dir,
			MaxFiles: cfg.FailLog.MaxFiles,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := p.Run(ctx, flags.Input, flags.Output, opts)
	if err != nil {
		display.PrintError(err.Error())
		return exitPipeline
	}

	fmt.Printf("Upscaled %d frames %dx%d -> %dx%d in %s\n",
		stats.Frames, stats.InW, stats.InH, stats.OutW, stats.OutH,
		stats.Duration.Round(10*time.Millisecond))
	return exitOK
}

func runConfig() int {
	cfg, err := config.Load()
	if err != nil {
		display.PrintError(err.Error())
		return exitConfig
	}
	fmt.Printf("paths.ffmpeg: %s\n", cfg.Paths.FFmpeg)
	fmt.Printf("paths.ffprobe: %s\n", cfg.Paths.FFprobe)
	fmt.Printf("paths.gmic: %s\n", cfg.Paths.GMIC)
	fmt.Printf("gmic.commands_dir: %s\n", cfg.GMIC.CommandsDir)
	fmt.Printf("defaults.width_scale: %d\n", cfg.Defaults.WidthScale)
	fmt.Printf("defaults.height_scale: %d\n", cfg.Defaults.HeightScale)
	fmt.Printf("defaults.smoothness: %d\n", cfg.Defaults.Smoothness)
	fmt.Printf("defaults.anisotropy: %g\n", cfg.Defaults.Anisotropy)
	fmt.Printf("defaults.sharpness: %d\n", cfg.Defaults.Sharpness)
	fmt.Printf("tracking.db_path: %s\n", cfg.Tracking.DBPath)
	fmt.Printf("faillog.dir: %s\n", cfg.FailLog.Dir)
	return exitOK
}

func runCommands() int {
	cfg, err := config.Load()
	if err != nil {
		display.PrintError(err.Error())
		return exitConfig
	}
	text, source := gmicdef.Load(cfg.GMIC.CommandsDir)
	reg, diags := gmicdef.Parse(text)
	for _, d := range diags {
		display.PrintWarning("commands file: " + d.String())
	}
	out, err := reg.YAML()
	if err != nil {
		display.PrintError(err.Error())
		return exitConfig
	}
	fmt.Printf("# source: %s\n", sourceName(source))
	os.Stdout.Write(out)
	return exitOK
}

func lazyTracker() (*tracking.Tracker, error) {
	cfg, _ := config.Load()
	dbPath := tracking.DBPath("")
	if cfg != nil {
		dbPath = tracking.DBPath(cfg.Tracking.DBPath)
	}
	return tracking.NewTracker(dbPath)
}

func sourceName(source string) string {
	if source == "" {
		return "built-in"
	}
	return source
}

// setupLogging maps verbosity to logrus levels. Default shows warnings
// only; -v adds progress info, -vv adds debug detail.
func setupLogging(verbose int) {
	logrus.SetOutput(os.Stderr)
	switch {
	case verbose >= 2:
		logrus.SetLevel(logrus.DebugLevel)
	case verbose == 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func printUsage() {
	usage := `ffmpeg-gmic-plus v%s — upscale a video through the G'MIC diffusion filter

Usage: ffmpeg-gmic-plus [flags] -i <input> -o <output>
       ffmpeg-gmic-plus <command> [args...]

Commands:
  commands       Show the parsed G'MIC command registry (YAML)
  config         Show current configuration
  history        Show recent runs
  init           Write a starter config file

Flags:
  -i, --input FILE      Input video file
  -o, --output FILE     Output video file
  --width_scale N       Width upscale percentage (default: 178)
  --height_scale N      Height upscale percentage (default: 150)
  --smoothness N        Smoothness level (default: 0)
  --anisotropy F        Anisotropy level (default: 0.4)
  --sharpness N         Sharpness level (default: 21)
  -v, -vv               Verbose output (stackable)
  --version             Show version
  --help                Show this help

Examples:
  ffmpeg-gmic-plus -i dvd.mp4 -o hd.mp4
  ffmpeg-gmic-plus --height_scale 150 -i in.mkv -o out.mkv
  ffmpeg-gmic-plus history --limit 5
`
	fmt.Printf(usage, version)
}

// Version returns the current version string.
func Version() string {
	return version
}
