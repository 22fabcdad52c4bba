package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeProbe writes a shell script standing in for ffprobe that prints the
// given JSON on stdout.
func fakeProbe(t *testing.T, json string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skip on windows")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\ncat <<'EOF'\n" + json + "\nEOF\n"
	if exitCode != 0 {
		script = "#!/bin/sh\necho 'boom' >&2\nexit 1\n"
	}
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbeFindsVideoStream(t *testing.T) {
	json := `{"streams":[
		{"codec_type":"audio","sample_rate":"48000"},
		{"codec_type":"video","width":720,"height":480}
	]}`
	bin := fakeProbe(t, json, 0)

	w, h, err := Probe(context.Background(), bin, "in.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 720 || h != 480 {
		t.Errorf("dimensions = %dx%d, want 720x480", w, h)
	}
}

func TestProbeNoVideoStream(t *testing.T) {
	bin := fakeProbe(t, `{"streams":[{"codec_type":"audio"}]}`, 0)

	_, _, err := Probe(context.Background(), bin, "audio.mp3")
	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProbeError", err)
	}
	if pe.Path != "audio.mp3" {
		t.Errorf("path = %q", pe.Path)
	}
}

func TestProbeInvalidDimensions(t *testing.T) {
	bin := fakeProbe(t, `{"streams":[{"codec_type":"video","width":0,"height":480}]}`, 0)

	_, _, err := Probe(context.Background(), bin, "in.mp4")
	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProbeError", err)
	}
}

func TestProbeProcessFailure(t *testing.T) {
	bin := fakeProbe(t, "", 1)

	_, _, err := Probe(context.Background(), bin, "in.mp4")
	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProbeError", err)
	}
}
