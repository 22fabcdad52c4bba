package gmicdef

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker is the annotation token that makes a line significant. Everything
// before it on the line is an arbitrary comment prefix and is discarded.
const Marker = "@gui"

// Diagnostic reports a recognized-but-malformed option line that was
// skipped during parsing. Parsing itself never fails: the registry is
// advisory, so a bad option must not abort the whole build.
type Diagnostic struct {
	Line   int
	Option string
	Msg    string
}

func (d Diagnostic) String() string {
	if d.Option == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Msg)
	}
	return fmt.Sprintf("line %d: option %q: %s", d.Line, d.Option, d.Msg)
}

// Parse builds a registry from annotation text in a single pass. Lines
// without the marker are ignored. A command-declaration line replaces the
// current command; option lines attach to it. Malformed option values are
// skipped and reported as diagnostics.
//
// Function references on command lines are trimmed like every other
// identifier; tokens left empty by trimming are dropped.
func Parse(text string) (*Set, []Diagnostic) {
	set := NewSet()
	var diags []Diagnostic
	var current *Command

	for n, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, Marker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(line[idx+len(Marker):])

		if !strings.HasPrefix(rest, ":") {
			name, refs, _ := strings.Cut(rest, ":")
			cmd := &Command{Key: strings.ToLower(strings.TrimSpace(name))}
			for _, fn := range strings.Split(refs, ",") {
				if fn = strings.TrimSpace(fn); fn != "" {
					cmd.Functions = append(cmd.Functions, fn)
				}
			}
			set.add(cmd)
			current = cmd
			continue
		}

		// Option line. Only meaningful once a command has been declared.
		if current == nil {
			continue
		}
		nameRaw, expr, ok := strings.Cut(rest[1:], "=")
		if !ok {
			// No "=" means no value definition; the option is not registered.
			continue
		}
		name := strings.ToLower(strings.TrimSpace(nameRaw))
		expr = strings.TrimSpace(expr)

		opt := &Option{Name: name, Type: detectType(expr)}
		var err error
		switch opt.Type {
		case TypeFloat:
			opt.Float, err = parseFloatRange(expr)
		case TypeInt:
			opt.Int, err = parseIntRange(expr)
		case TypeChoice:
			opt.Choice, err = parseChoice(expr)
		case TypeText, TypeUnknown:
			// No structured value to extract.
		}
		if err != nil {
			diags = append(diags, Diagnostic{Line: n + 1, Option: name, Msg: err.Error()})
			continue
		}
		current.setOption(opt)
	}

	return set, diags
}

// detectType tests the value expression for the supported type markers in
// fixed priority order; the first match wins.
func detectType(expr string) ValueType {
	switch {
	case strings.Contains(expr, "text("):
		return TypeText
	case strings.Contains(expr, "float("):
		return TypeFloat
	case strings.Contains(expr, "int("):
		return TypeInt
	case strings.Contains(expr, "choice("):
		return TypeChoice
	}
	return TypeUnknown
}

// parenArgs extracts the substring between the first "(" and the first ")"
// after it. The scan is not nesting-aware; none of the supported types
// carry a literal ")" in their arguments.
func parenArgs(expr string) (string, error) {
	open := strings.IndexByte(expr, '(')
	if open < 0 {
		return "", fmt.Errorf("missing opening parenthesis")
	}
	close := strings.IndexByte(expr[open+1:], ')')
	if close < 0 {
		return "", fmt.Errorf("missing closing parenthesis")
	}
	return expr[open+1 : open+1+close], nil
}

func parseFloatRange(expr string) (*FloatRange, error) {
	vals, err := parseNumericArgs(expr)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 3)
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", v)
		}
		out[i] = f
	}
	return &FloatRange{Default: out[0], Min: out[1], Max: out[2]}, nil
}

func parseIntRange(expr string) (*IntRange, error) {
	vals, err := parseNumericArgs(expr)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 3)
	for i, v := range vals {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		out[i] = n
	}
	return &IntRange{Default: out[0], Min: out[1], Max: out[2]}, nil
}

// parseNumericArgs returns exactly three trimmed tokens (default, min, max).
func parseNumericArgs(expr string) ([]string, error) {
	args, err := parenArgs(expr)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("want 3 arguments (default,min,max), got %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parseChoice(expr string) (*ChoiceSpec, error) {
	args, err := parenArgs(expr)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(args, ",")
	def, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid default index %q", parts[0])
	}
	labels := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		labels = append(labels, stripQuotes(strings.TrimSpace(p)))
	}
	// Out-of-range defaults are an error, never clamped.
	if def < 0 || def >= len(labels) {
		return nil, fmt.Errorf("default index %d out of range (%d labels)", def, len(labels))
	}
	return &ChoiceSpec{Default: def, Labels: labels}, nil
}

// stripQuotes removes one layer of matching surrounding quotes, if present.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		c := s[0]
		if (c == '"' || c == '\'') && s[len(s)-1] == c {
			return s[1 : len(s)-1]
		}
	}
	return s
}
