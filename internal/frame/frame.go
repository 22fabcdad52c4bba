// Package frame holds raw RGB24 pixel buffers flowing between the decode
// and encode stages, plus the PPM codec used to exchange frames with the
// external G'MIC process.
package frame

import "fmt"

// Frame is one raw pixel grid: row-major, channel-interleaved RGB,
// one byte per channel.
type Frame struct {
	W, H int
	Pix  []byte
}

// New allocates a zeroed frame of the given dimensions.
func New(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*3)}
}

// Size returns the byte length of one frame at the given dimensions.
func Size(w, h int) int {
	return w * h * 3
}

// Size returns the expected byte length of the frame's pixel buffer.
func (f *Frame) Size() int {
	return Size(f.W, f.H)
}

// Validate checks that the pixel buffer matches the declared dimensions.
func (f *Frame) Validate() error {
	if f.W <= 0 || f.H <= 0 {
		return fmt.Errorf("frame: invalid dimensions %dx%d", f.W, f.H)
	}
	if len(f.Pix) != f.Size() {
		return fmt.Errorf("frame: buffer is %d bytes, want %d for %dx%d", len(f.Pix), f.Size(), f.W, f.H)
	}
	return nil
}

// At returns the R,G,B bytes of the pixel at (x, y). No bounds checking
// beyond the slice's own.
func (f *Frame) At(x, y int) (r, g, b byte) {
	i := (y*f.W + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}
