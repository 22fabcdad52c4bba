package engine

import "fmt"

// ProbeError reports that the input file's video stream could not be
// inspected. Fatal: without dimensions no frame can be framed.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// StageLaunchError reports that a decode or encode process failed to start.
type StageLaunchError struct {
	Stage string // "decode" or "encode"
	Err   error
}

func (e *StageLaunchError) Error() string {
	return fmt.Sprintf("start %s stage: %v", e.Stage, e.Err)
}

func (e *StageLaunchError) Unwrap() error { return e.Err }

// TruncatedFrameError reports a short, non-empty read from the decode
// stream: the stream ended mid-frame, so the raw framing is corrupt.
type TruncatedFrameError struct {
	Frame int // zero-based index of the truncated frame
	Got   int
	Want  int
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("truncated frame %d: read %d of %d bytes", e.Frame, e.Got, e.Want)
}

// StageExitError reports a non-zero exit from a decode or encode process.
// Stderr carries the tail of the process's diagnostics.
type StageExitError struct {
	Stage  string
	Code   int
	Stderr string
}

func (e *StageExitError) Error() string {
	return fmt.Sprintf("%s stage exited with code %d", e.Stage, e.Code)
}
