package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestStripANSI(t *testing.T) {
	in := "\x1b[31merror\x1b[0m: bad frame"
	if got := StripANSI(in); got != "error: bad frame" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestFormatDurationMs(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{850, "850ms"},
		{1500, "1.5s"},
		{12_340, "12.3s"},
		{245_000, "4m05s"},
	}
	for _, tt := range tests {
		if got := FormatDurationMs(tt.ms); got != tt.want {
			t.Errorf("FormatDurationMs(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
