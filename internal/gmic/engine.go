package gmic

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/frame"
)

// CLIEngine runs the external gmic binary once per frame. Frames cross the
// process boundary as PPM files in a scratch directory; gmic picks the
// format from the file extension. Each invocation is stateless, so the
// engine is safe to reuse across frames.
type CLIEngine struct {
	Binary string // gmic executable, defaults to "gmic"
	dir    string // lazily created scratch dir, removed by Close
}

// NewCLIEngine returns an engine invoking the given gmic binary.
func NewCLIEngine(binary string) *CLIEngine {
	if binary == "" {
		binary = "gmic"
	}
	return &CLIEngine{Binary: binary}
}

// Apply writes f to disk, runs "gmic <in> <command...> output <out>", and
// reads the transformed frame back. The output dimensions are whatever the
// filter produced; callers must not assume they match the input.
func (e *CLIEngine) Apply(ctx context.Context, f *frame.Frame, command string) (*frame.Frame, error) {
	if e.dir == "" {
		dir, err := os.MkdirTemp("", "gmic-frame-")
		if err != nil {
			return nil, fmt.Errorf("gmic: scratch dir: %w", err)
		}
		e.dir = dir
	}

	inPath := filepath.Join(e.dir, "in.ppm")
	outPath := filepath.Join(e.dir, "out.ppm")

	in, err := os.Create(inPath)
	if err != nil {
		return nil, fmt.Errorf("gmic: create input: %w", err)
	}
	if err := frame.WritePPM(in, f); err != nil {
		in.Close()
		return nil, err
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("gmic: flush input: %w", err)
	}

	args := []string{inPath}
	args = append(args, strings.Fields(command)...)
	args = append(args, "output", outPath)

	cmd := exec.CommandContext(ctx, e.Binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("gmic: %w: %s", err, strings.TrimSpace(string(out)))
	}

	outFile, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("gmic: open output: %w", err)
	}
	defer outFile.Close()

	result, err := frame.ReadPPM(outFile)
	if err != nil {
		return nil, fmt.Errorf("gmic: read output: %w", err)
	}
	return result, nil
}

// Close removes the scratch directory.
func (e *CLIEngine) Close() error {
	if e.dir == "" {
		return nil
	}
	dir := e.dir
	e.dir = ""
	return os.RemoveAll(dir)
}
