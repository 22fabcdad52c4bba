package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/utils"
)

// stageStderrLimit caps how much stage stderr is buffered for error
// reporting and failure logs.
const stageStderrLimit = 64 << 10

// stage wraps one external ffmpeg process. The pipeline owns the stage and
// its streams exclusively for the whole run.
type stage struct {
	name   string
	cmd    *exec.Cmd
	stderr bytes.Buffer
}

// startDecode launches the decode stage: input file in, continuous raw
// RGB24 frames on stdout. Runs until the input is exhausted or the context
// is cancelled.
func startDecode(ctx context.Context, ffmpeg, input string) (*stage, io.ReadCloser, error) {
	s := &stage{name: "decode"}
	s.cmd = exec.CommandContext(ctx, ffmpeg,
		"-v", "error",
		"-i", input,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)
	s.cmd.Stderr = &limitedWriter{w: &s.stderr, n: stageStderrLimit}

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, nil, &StageLaunchError{Stage: s.name, Err: fmt.Errorf("stdout pipe: %w", err)}
	}
	if err := s.cmd.Start(); err != nil {
		return nil, nil, &StageLaunchError{Stage: s.name, Err: err}
	}
	return s, stdout, nil
}

// startEncode launches the encode stage: raw RGB24 frames of the given
// dimensions on stdin, encoded video at the output path. Any existing
// output file is overwritten.
func startEncode(ctx context.Context, ffmpeg, output string, width, height int) (*stage, io.WriteCloser, error) {
	s := &stage{name: "encode"}
	s.cmd = exec.CommandContext(ctx, ffmpeg,
		"-v", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-i", "pipe:0",
		"-pix_fmt", "yuv420p",
		output,
	)
	s.cmd.Stderr = &limitedWriter{w: &s.stderr, n: stageStderrLimit}

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, nil, &StageLaunchError{Stage: s.name, Err: fmt.Errorf("stdin pipe: %w", err)}
	}
	if err := s.cmd.Start(); err != nil {
		return nil, nil, &StageLaunchError{Stage: s.name, Err: err}
	}
	return s, stdin, nil
}

// wait reaps the process. A non-zero exit becomes a *StageExitError with
// the captured stderr; other wait failures are wrapped as-is.
func (s *stage) wait() error {
	err := s.cmd.Wait()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &StageExitError{
			Stage:  s.name,
			Code:   exitErr.ExitCode(),
			Stderr: s.stderrText(),
		}
	}
	return fmt.Errorf("wait %s stage: %w", s.name, err)
}

// stderrText returns the captured stderr, stripped of escape sequences.
func (s *stage) stderrText() string {
	return strings.TrimSpace(utils.StripANSI(s.stderr.String()))
}

// limitedWriter keeps the first n bytes and silently drops the rest.
type limitedWriter struct {
	w io.Writer
	n int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	if lw.n > 0 {
		keep := p
		if len(keep) > lw.n {
			keep = keep[:lw.n]
		}
		if _, err := lw.w.Write(keep); err != nil {
			return 0, err
		}
		lw.n -= len(keep)
	}
	return len(p), nil
}
