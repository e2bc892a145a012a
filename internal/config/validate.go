package config

import "github.com/cockroachdb/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output cannot be empty")
	}
	if c.StaticMarker == "" {
		return errors.New("static_marker cannot be empty")
	}

	seen := make(map[string]bool, len(c.Types))
	for i, m := range c.Types {
		if m.Native == "" {
			return errors.Newf("types[%d].native cannot be empty", i)
		}
		if m.Annotation == "" {
			return errors.Newf("types[%d].annotation cannot be empty for %q", i, m.Native)
		}
		if seen[m.Native] {
			return errors.Newf("types[%d] maps %q twice", i, m.Native)
		}
		seen[m.Native] = true
	}

	for _, sp := range c.SmartPointers {
		if sp == "" {
			return errors.New("smart_pointers cannot contain an empty name")
		}
	}
	return nil
}
