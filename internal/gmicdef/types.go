// Package gmicdef parses G'MIC GUI annotation text ("#@gui" lines) into an
// ordered registry of filter commands and their tunable options. The
// registry is advisory: it tells configuration code which commands exist
// and what their parameter defaults and bounds are.
package gmicdef

import "strings"

// ValueType classifies an option's value expression.
type ValueType string

const (
	TypeText    ValueType = "text"
	TypeFloat   ValueType = "float"
	TypeInt     ValueType = "int"
	TypeChoice  ValueType = "choice"
	TypeUnknown ValueType = "unknown"
)

// FloatRange holds default/min/max for a float option.
type FloatRange struct {
	Default float64
	Min     float64
	Max     float64
}

// IntRange holds default/min/max for an integer option.
type IntRange struct {
	Default int64
	Min     int64
	Max     int64
}

// ChoiceSpec holds the default index and labels of an indexed-choice option.
type ChoiceSpec struct {
	Default int
	Labels  []string
}

// Option is one tunable parameter of a command. Exactly the value spec
// matching Type is non-nil; text and unknown options carry no value spec
// (free-text expressions hold a placeholder, not a semantic default).
type Option struct {
	Name   string
	Type   ValueType
	Float  *FloatRange
	Int    *IntRange
	Choice *ChoiceSpec
}

// Command is one advertised filter command: a lowercase key, the raw
// function references from its declaration line, and its options in
// declaration order.
type Command struct {
	Key       string
	Functions []string

	options []*Option
	byName  map[string]*Option
}

// Options returns the command's options in declaration order.
func (c *Command) Options() []*Option {
	return c.options
}

// Option returns the option with the given name (lowercased), or nil.
func (c *Command) Option(name string) *Option {
	return c.byName[strings.ToLower(name)]
}

// setOption registers opt, replacing a same-named option in place so the
// original declaration position is kept.
func (c *Command) setOption(opt *Option) {
	if c.byName == nil {
		c.byName = make(map[string]*Option)
	}
	if prev, ok := c.byName[opt.Name]; ok {
		for i, o := range c.options {
			if o == prev {
				c.options[i] = opt
				break
			}
		}
	} else {
		c.options = append(c.options, opt)
	}
	c.byName[opt.Name] = opt
}

// Set is the registry produced by one parse pass: commands keyed by their
// lowercase name, in declaration order. It is never mutated after Parse
// returns.
type Set struct {
	commands []*Command
	byKey    map[string]*Command
}

// NewSet returns an empty registry.
func NewSet() *Set {
	return &Set{byKey: make(map[string]*Command)}
}

// Commands returns all commands in declaration order.
func (s *Set) Commands() []*Command {
	return s.commands
}

// Get looks up a command by key, case-insensitively.
func (s *Set) Get(key string) *Command {
	return s.byKey[strings.ToLower(key)]
}

// Len returns the number of registered commands.
func (s *Set) Len() int {
	return len(s.commands)
}

// add registers cmd under its key. A later definition with the same key
// wins but keeps the original position (matching ordered-map semantics).
func (s *Set) add(cmd *Command) {
	if prev, ok := s.byKey[cmd.Key]; ok {
		for i, c := range s.commands {
			if c == prev {
				s.commands[i] = cmd
				break
			}
		}
	} else {
		s.commands = append(s.commands, cmd)
	}
	s.byKey[cmd.Key] = cmd
}
