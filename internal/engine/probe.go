package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

// Probe inspects the input file with ffprobe and returns the dimensions of
// its first video stream. A file with no video stream is a *ProbeError.
func Probe(ctx context.Context, ffprobe, path string) (width, height int, err error) {
	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return 0, 0, &ProbeError{Path: path, Err: err}
	}

	for _, stream := range gjson.GetBytes(out, "streams").Array() {
		if stream.Get("codec_type").String() != "video" {
			continue
		}
		width = int(stream.Get("width").Int())
		height = int(stream.Get("height").Int())
		if width <= 0 || height <= 0 {
			return 0, 0, &ProbeError{Path: path, Err: fmt.Errorf("video stream has invalid dimensions %dx%d", width, height)}
		}
		return width, height, nil
	}
	return 0, 0, &ProbeError{Path: path, Err: fmt.Errorf("no video stream found")}
}
