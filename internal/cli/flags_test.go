package cli

import "testing"

func TestParseFlagsInputOutput(t *testing.T) {
	flags, remaining, err := ParseFlags([]string{"-i", "in.mp4", "-o", "out.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.Input != "in.mp4" || flags.Output != "out.mp4" {
		t.Errorf("input = %q output = %q", flags.Input, flags.Output)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	flags, _, err := ParseFlags([]string{
		"--width_scale", "200",
		"--height_scale=150",
		"--anisotropy", "0.6",
		"--sharpness=30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.WidthScale == nil || *flags.WidthScale != 200 {
		t.Error("width_scale not parsed")
	}
	if flags.HeightScale == nil || *flags.HeightScale != 150 {
		t.Error("--flag=value form not parsed")
	}
	if flags.Anisotropy == nil || *flags.Anisotropy != 0.6 {
		t.Error("anisotropy not parsed")
	}
	if flags.Sharpness == nil || *flags.Sharpness != 30 {
		t.Error("sharpness not parsed")
	}
	if flags.Smoothness != nil {
		t.Error("absent flags must stay nil so config defaults apply")
	}
}

func TestParseFlagsMissingValue(t *testing.T) {
	if _, _, err := ParseFlags([]string{"-i"}); err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestParseFlagsInvalidNumber(t *testing.T) {
	if _, _, err := ParseFlags([]string{"--width_scale", "wide"}); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if _, _, err := ParseFlags([]string{"--anisotropy=x"}); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestParseFlagsVerbosity(t *testing.T) {
	flags, _, _ := ParseFlags([]string{"-v"})
	if flags.Verbose != 1 {
		t.Errorf("verbose = %d, want 1", flags.Verbose)
	}
	flags, _, _ = ParseFlags([]string{"-vv"})
	if flags.Verbose != 2 {
		t.Errorf("verbose = %d, want 2", flags.Verbose)
	}
}

func TestParseFlagsSubcommandPassthrough(t *testing.T) {
	flags, remaining, err := ParseFlags([]string{"history", "--limit", "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.Input != "" {
		t.Errorf("input = %q", flags.Input)
	}
	if len(remaining) != 3 || remaining[0] != "history" {
		t.Errorf("remaining = %v", remaining)
	}
}
