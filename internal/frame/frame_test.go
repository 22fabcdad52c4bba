package frame

import (
	"bytes"
	"strings"
	"testing"
)

func TestSize(t *testing.T) {
	if got := Size(2, 2); got != 12 {
		t.Errorf("Size(2,2) = %d, want 12", got)
	}
	f := New(4, 3)
	if f.Size() != 36 || len(f.Pix) != 36 {
		t.Errorf("4x3 frame size = %d, buffer = %d", f.Size(), len(f.Pix))
	}
}

func TestValidate(t *testing.T) {
	f := New(2, 2)
	if err := f.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := &Frame{W: 2, H: 2, Pix: make([]byte, 10)}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for short buffer")
	}

	zero := &Frame{W: 0, H: 2, Pix: nil}
	if err := zero.Validate(); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestAt(t *testing.T) {
	f := New(2, 2)
	// second row, second pixel
	f.Pix[9], f.Pix[10], f.Pix[11] = 1, 2, 3
	r, g, b := f.At(1, 1)
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("At(1,1) = %d,%d,%d", r, g, b)
	}
}

func TestPPMRoundTrip(t *testing.T) {
	f := New(3, 2)
	for i := range f.Pix {
		f.Pix[i] = byte(i * 7)
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.W != 3 || got.H != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", got.W, got.H)
	}
	if !bytes.Equal(got.Pix, f.Pix) {
		t.Error("pixel data changed in round trip")
	}
}

func TestReadPPMWithComments(t *testing.T) {
	data := "P6\n# created by gmic\n2 1\n255\n\x01\x02\x03\x04\x05\x06"
	f, err := ReadPPM(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.W != 2 || f.H != 1 {
		t.Errorf("dimensions = %dx%d", f.W, f.H)
	}
	if f.Pix[0] != 1 || f.Pix[5] != 6 {
		t.Errorf("pixels = %v", f.Pix)
	}
}

func TestReadPPMBadMagic(t *testing.T) {
	if _, err := ReadPPM(strings.NewReader("P5\n2 2\n255\n")); err == nil {
		t.Error("expected error for non-P6 magic")
	}
}

func TestReadPPMTruncatedPixels(t *testing.T) {
	if _, err := ReadPPM(strings.NewReader("P6\n2 2\n255\n\x01\x02")); err == nil {
		t.Error("expected error for truncated pixel data")
	}
}

func TestReadPPMUnsupportedMaxval(t *testing.T) {
	if _, err := ReadPPM(strings.NewReader("P6\n1 1\n65535\n\x00\x00\x00\x00\x00\x00")); err == nil {
		t.Error("expected error for 16-bit maxval")
	}
}

func TestWritePPMRejectsInvalidFrame(t *testing.T) {
	bad := &Frame{W: 2, H: 2, Pix: make([]byte, 3)}
	if err := WritePPM(&bytes.Buffer{}, bad); err == nil {
		t.Error("expected error for mismatched buffer")
	}
}
