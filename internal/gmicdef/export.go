package gmicdef

import "gopkg.in/yaml.v3"

// YAML view structs: the registry's internal ordering containers don't
// marshal directly, so the export flattens them.

type yamlOption struct {
	Name   string      `yaml:"name"`
	Type   ValueType   `yaml:"type"`
	Float  *FloatRange `yaml:"float,omitempty"`
	Int    *IntRange   `yaml:"int,omitempty"`
	Choice *ChoiceSpec `yaml:"choice,omitempty"`
}

type yamlCommand struct {
	Key       string       `yaml:"key"`
	Functions []string     `yaml:"functions,omitempty"`
	Options   []yamlOption `yaml:"options,omitempty"`
}

// YAML renders the registry as YAML, preserving declaration order. Used by
// the "commands" subcommand so users can inspect what was parsed.
func (s *Set) YAML() ([]byte, error) {
	cmds := make([]yamlCommand, 0, len(s.commands))
	for _, c := range s.commands {
		yc := yamlCommand{Key: c.Key, Functions: c.Functions}
		for _, o := range c.options {
			yc.Options = append(yc.Options, yamlOption{
				Name:   o.Name,
				Type:   o.Type,
				Float:  o.Float,
				Int:    o.Int,
				Choice: o.Choice,
			})
		}
		cmds = append(cmds, yc)
	}
	return yaml.Marshal(cmds)
}
