package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Flags holds parsed global flags. The filter parameter overrides are
// pointers so that configuration defaults apply when a flag is absent.
type Flags struct {
	Input  string
	Output string

	WidthScale  *int
	HeightScale *int
	Smoothness  *int
	Anisotropy  *float64
	Sharpness   *int

	Verbose int
	Version bool
	Help    bool
}

// ParseFlags extracts flags from args and returns remaining args
// (subcommands and their arguments). Both "--flag value" and "--flag=value"
// forms are accepted.
func ParseFlags(args []string) (Flags, []string, error) {
	var flags Flags
	var remaining []string

	next := func(i *int, name, inline string) (string, error) {
		if inline != "" {
			return inline, nil
		}
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, inline, _ := strings.Cut(arg, "=")

		switch name {
		case "-i", "--input":
			v, err := next(&i, name, inline)
			if err != nil {
				return flags, nil, err
			}
			flags.Input = v
		case "-o", "--output":
			v, err := next(&i, name, inline)
			if err != nil {
				return flags, nil, err
			}
			flags.Output = v
		case "--width_scale", "--height_scale", "--smoothness", "--sharpness":
			v, err := next(&i, name, inline)
			if err != nil {
				return flags, nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return flags, nil, fmt.Errorf("%s: invalid integer %q", name, v)
			}
			switch name {
			case "--width_scale":
				flags.WidthScale = &n
			case "--height_scale":
				flags.HeightScale = &n
			case "--smoothness":
				flags.Smoothness = &n
			case "--sharpness":
				flags.Sharpness = &n
			}
		case "--anisotropy":
			v, err := next(&i, name, inline)
			if err != nil {
				return flags, nil, err
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return flags, nil, fmt.Errorf("%s: invalid number %q", name, v)
			}
			flags.Anisotropy = &f
		case "-vv":
			flags.Verbose = 2
		case "-v":
			if flags.Verbose < 1 {
				flags.Verbose = 1
			}
		case "--version":
			flags.Version = true
		case "--help", "-h":
			flags.Help = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining, nil
}
