package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents the root of a tag configuration file.
type File struct {
	// Version of the configuration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types lists the structs to generate, in generation order.
	Types []TypeMapping `yaml:"types"`
}

// TypeMapping configures one struct of the analyzed package.
type TypeMapping struct {
	// Name is the struct type name, without package qualifier.
	Name string `yaml:"name"`

	// Keys maps Go field names to tag keys.
	Keys map[string]string `yaml:"keys,omitempty"`

	// Strategies maps Go field names to strategy names.
	Strategies map[string]string `yaml:"strategies,omitempty"`

	// Ignore lists fields that are not encoded.
	Ignore StringOrArray `yaml:"ignore,omitempty"`
}

// Ignores reports whether field is listed in Ignore.
func (tm *TypeMapping) Ignores(field string) bool {
	for _, name := range tm.Ignore {
		if name == field {
			return true
		}
	}

	return false
}

// Type returns the mapping of the named struct, or nil.
func (f *File) Type(name string) *TypeMapping {
	if f == nil {
		return nil
	}

	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i]
		}
	}

	return nil
}

// Names returns the configured type names in file order.
func (f *File) Names() []string {
	if f == nil {
		return nil
	}

	names := make([]string, len(f.Types))
	for i := range f.Types {
		names[i] = f.Types[i].Name
	}

	return names
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str == "" {
			*s = StringOrArray{}
		} else {
			*s = StringOrArray{str}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}
