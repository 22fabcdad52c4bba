// Package engine owns the frame streaming pipeline: an external decode
// process feeding raw frames, a synchronous per-frame filter call, and an
// external encode process consuming the results.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/faillog"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/frame"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/gmic"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/tracking"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/utils"
)

// FilterEngine transforms one frame through the external filter. Each call
// is an independent, synchronous invocation; the output dimensions are
// whatever the filter produced.
type FilterEngine interface {
	Apply(ctx context.Context, f *frame.Frame, command string) (*frame.Frame, error)
}

// Pipeline orchestrates probing, the decode and encode stages, per-frame
// filtering, failure logs, and run tracking. The two stage processes and
// their streams are owned exclusively by the pipeline for the whole run.
type Pipeline struct {
	FFmpeg  string // ffmpeg binary, defaults to "ffmpeg"
	FFprobe string // ffprobe binary, defaults to "ffprobe"
	Engine  FilterEngine
	Tracker *tracking.Tracker
	FailLog faillog.Config
}

// RunStats summarizes a completed run.
type RunStats struct {
	Frames     int
	InW, InH   int
	OutW, OutH int
	Duration   time.Duration
}

func (p *Pipeline) ffmpegBin() string {
	if p.FFmpeg != "" {
		return p.FFmpeg
	}
	return "ffmpeg"
}

func (p *Pipeline) ffprobeBin() string {
	if p.FFprobe != "" {
		return p.FFprobe
	}
	return "ffprobe"
}

// Run upscales input into output. Any failure is terminal for the run:
// both stage processes are torn down and the partial output file is
// deleted, since a half-written video is not a usable deliverable.
func (p *Pipeline) Run(ctx context.Context, input, output string, opts gmic.Options) (*RunStats, error) {
	start := time.Now()

	w, h, err := Probe(ctx, p.ffprobeBin(), input)
	if err != nil {
		p.track(input, output, nil, start, err)
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"input":  input,
		"width":  w,
		"height": h,
	})
	log.Info("video stream probed")

	// Cancelling the context terminates both stage processes, so every
	// error path below releases the handles deterministically.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dec, decOut, err := startDecode(ctx, p.ffmpegBin(), input)
	if err != nil {
		p.track(input, output, nil, start, err)
		return nil, err
	}

	command := opts.Command()
	log.WithField("command", command).Debug("filter command built")

	// The encode stage is started lazily from the first filtered frame:
	// the filter decides the output dimensions, not the probe.
	var enc *stage
	res, runErr := streamFrames(ctx, decOut, func(fw, fh int) (io.WriteCloser, error) {
		s, in, err := startEncode(ctx, p.ffmpegBin(), output, fw, fh)
		if err != nil {
			return nil, err
		}
		enc = s
		log.WithFields(logrus.Fields{
			"out_width":  fw,
			"out_height": fh,
		}).Info("encode stage started")
		return in, nil
	}, w, h, p.Engine, command)

	// Drain: close the encoder's input so it can finish, then reap both.
	if res.enc != nil {
		if cerr := res.enc.Close(); cerr != nil && runErr == nil {
			runErr = fmt.Errorf("close encode stream: %w", cerr)
		}
	}
	if runErr != nil {
		cancel()
	}
	decErr := dec.wait()
	var encErr error
	if enc != nil {
		encErr = enc.wait()
	}
	if runErr == nil {
		runErr = decErr
	}
	if runErr == nil {
		runErr = encErr
	}

	stats := &RunStats{
		Frames:   res.frames,
		InW:      w,
		InH:      h,
		OutW:     res.outW,
		OutH:     res.outH,
		Duration: time.Since(start),
	}

	if runErr != nil {
		p.saveStageLogs(dec, enc)
		// Partial output disposition: delete. Kept deliberate, not left
		// to whatever ffmpeg had flushed.
		if enc != nil {
			os.Remove(output)
		}
		p.track(input, output, stats, start, runErr)
		return nil, runErr
	}

	if res.frames == 0 {
		log.Warn("decode stream produced no frames; no output written")
	}
	log.WithFields(logrus.Fields{
		"frames":   stats.Frames,
		"duration": stats.Duration.Round(time.Millisecond).String(),
	}).Info("pipeline complete")
	p.track(input, output, stats, start, nil)
	return stats, nil
}

// encodeStarter opens the encode stream once the output dimensions are
// known.
type encodeStarter func(w, h int) (io.WriteCloser, error)

type streamResult struct {
	frames     int
	outW, outH int
	enc        io.WriteCloser
}

// streamFrames runs the per-frame loop: read exactly one raw frame, filter
// it, write the result. A clean EOF at a frame boundary ends the loop; a
// short non-empty read is a *TruncatedFrameError and nothing further is
// written. Separated from Run so the framing contract is testable without
// subprocesses.
func streamFrames(ctx context.Context, dec io.Reader, startEnc encodeStarter, w, h int, eng FilterEngine, command string) (streamResult, error) {
	var res streamResult
	buf := make([]byte, frame.Size(w, h))

	for {
		n, err := io.ReadFull(dec, buf)
		switch err {
		case nil:
		case io.EOF:
			return res, nil
		case io.ErrUnexpectedEOF:
			return res, &TruncatedFrameError{Frame: res.frames, Got: n, Want: len(buf)}
		default:
			return res, fmt.Errorf("read decode stream: %w", err)
		}

		in := &frame.Frame{W: w, H: h, Pix: buf}
		out, err := eng.Apply(ctx, in, command)
		if err != nil {
			return res, fmt.Errorf("filter frame %d: %w", res.frames, err)
		}
		if err := out.Validate(); err != nil {
			return res, fmt.Errorf("filter frame %d: %w", res.frames, err)
		}

		if res.enc == nil {
			res.outW, res.outH = out.W, out.H
			enc, err := startEnc(out.W, out.H)
			if err != nil {
				return res, err
			}
			res.enc = enc
		} else if out.W != res.outW || out.H != res.outH {
			return res, fmt.Errorf("frame %d is %dx%d, encode stage expects %dx%d",
				res.frames, out.W, out.H, res.outW, res.outH)
		}

		if _, err := res.enc.Write(out.Pix); err != nil {
			return res, fmt.Errorf("write encode stream: %w", err)
		}
		res.frames++
	}
}

// saveStageLogs persists captured stage stderr for post-mortem inspection.
func (p *Pipeline) saveStageLogs(stages ...*stage) {
	for _, s := range stages {
		if s == nil {
			continue
		}
		if path := faillog.Save(s.stderrText(), s.name, p.FailLog); path != "" {
			logrus.WithFields(logrus.Fields{
				"stage": s.name,
				"path":  path,
			}).Warn("stage stderr saved")
		}
	}
}

// track records the run outcome; tracking failures only warn.
func (p *Pipeline) track(input, output string, stats *RunStats, start time.Time, runErr error) {
	if p.Tracker == nil {
		return
	}
	r := tracking.Run{
		ID:         uuid.NewString(),
		Input:      input,
		Output:     output,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     "ok",
	}
	if stats != nil {
		r.InWidth, r.InHeight = stats.InW, stats.InH
		r.OutWidth, r.OutHeight = stats.OutW, stats.OutH
		r.Frames = stats.Frames
	}
	if runErr != nil {
		r.Status = utils.Truncate(runErr.Error(), 200)
	}
	if err := p.Tracker.Record(r); err != nil {
		logrus.WithError(err).Warn("run tracking failed")
	}
}
