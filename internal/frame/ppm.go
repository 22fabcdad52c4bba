package frame

import (
	"bufio"
	"fmt"
	"io"
)

// WritePPM writes the frame as a binary PPM (P6, maxval 255). This is the
// interchange format handed to the external G'MIC process.
func WritePPM(w io.Writer, f *Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", f.W, f.H); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	if _, err := bw.Write(f.Pix); err != nil {
		return fmt.Errorf("ppm: write pixels: %w", err)
	}
	return bw.Flush()
}

// ReadPPM parses a binary PPM (P6, maxval 255) into a frame. Comments in
// the header are tolerated, as G'MIC emits them on occasion.
func ReadPPM(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	magic, err := readPPMToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: read magic: %w", err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("ppm: unsupported magic %q", magic)
	}

	var dims [3]int
	for i := range dims {
		tok, err := readPPMToken(br)
		if err != nil {
			return nil, fmt.Errorf("ppm: read header: %w", err)
		}
		n, err := parsePPMInt(tok)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	w, h, maxval := dims[0], dims[1], dims[2]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ppm: invalid dimensions %dx%d", w, h)
	}
	if maxval != 255 {
		return nil, fmt.Errorf("ppm: unsupported maxval %d", maxval)
	}

	f := New(w, h)
	if _, err := io.ReadFull(br, f.Pix); err != nil {
		return nil, fmt.Errorf("ppm: read pixels: %w", err)
	}
	return f, nil
}

// readPPMToken returns the next whitespace-delimited header token, skipping
// '#' comments. The single whitespace byte after the token is consumed.
func readPPMToken(br *bufio.Reader) (string, error) {
	var tok []byte
	inComment := false
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case inComment:
			if b == '\n' {
				inComment = false
			}
		case b == '#':
			inComment = true
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func parsePPMInt(tok string) (int, error) {
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("ppm: invalid number %q in header", tok)
		}
		n = n*10 + int(c-'0')
		if n > 1<<24 {
			return 0, fmt.Errorf("ppm: header number %q out of range", tok)
		}
	}
	return n, nil
}
