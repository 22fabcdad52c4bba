package engine

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func TestStageWaitExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skip on windows")
	}
	s := &stage{name: "decode"}
	s.cmd = exec.Command("sh", "-c", "echo 'frame error' >&2; exit 3")
	s.cmd.Stderr = &limitedWriter{w: &s.stderr, n: stageStderrLimit}
	if err := s.cmd.Start(); err != nil {
		t.Fatal(err)
	}

	err := s.wait()
	var se *StageExitError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StageExitError", err)
	}
	if se.Stage != "decode" || se.Code != 3 {
		t.Errorf("stage = %q code = %d", se.Stage, se.Code)
	}
	if se.Stderr != "frame error" {
		t.Errorf("stderr = %q", se.Stderr)
	}
}

func TestStageWaitSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skip on windows")
	}
	s := &stage{name: "encode"}
	s.cmd = exec.Command("true")
	if err := s.cmd.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.wait(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLimitedWriterCapsOutput(t *testing.T) {
	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, n: 4}

	n, err := lw.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("write = %d, %v", n, err)
	}
	n, err = lw.Write([]byte("ghi"))
	if err != nil || n != 3 {
		t.Fatalf("write = %d, %v", n, err)
	}
	if buf.String() != "abcd" {
		t.Errorf("kept = %q, want abcd", buf.String())
	}
}
