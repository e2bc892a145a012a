// Package config loads swiglls settings from swiglls.toml, SWIGLLS_*
// environment variables and command line flags.
package config

import (
	"github.com/phobologic/swiglls/internal/parse"
	"github.com/phobologic/swiglls/internal/resolve"
)

// Config holds every setting of a run.
type Config struct {
	Output        string        `mapstructure:"output"`         // directory receiving the .lua files
	StaticMarker  string        `mapstructure:"static_marker"`  // SWIG view value of static member functions
	CallbackTypes []string      `mapstructure:"callback_types"` // typedef targets emitted as function
	SmartPointers []string      `mapstructure:"smart_pointers"` // templates unwrapped to their argument
	Types         []TypeMapping `mapstructure:"types"`
	Check         bool          `mapstructure:"check"` // syntax check generated files before writing
	Log           LogConfig     `mapstructure:"log"`
}

// TypeMapping forces a native base type to an annotation type. It is a list
// entry rather than a table key because native names are case sensitive.
type TypeMapping struct {
	Native     string `mapstructure:"native"`
	Annotation string `mapstructure:"annotation"`
}

// LogConfig configures diagnostics output.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
	JSON    bool `mapstructure:"json"`
}

// ParseOptions returns the ingest settings.
func (c *Config) ParseOptions() parse.Options {
	return parse.Options{StaticMarker: c.StaticMarker, CallbackTypes: c.CallbackTypes}
}

// ResolveOptions returns the type resolution settings.
func (c *Config) ResolveOptions() resolve.Options {
	opts := resolve.Options{SmartPointers: c.SmartPointers}
	if len(c.Types) > 0 {
		opts.Types = make(map[string]string, len(c.Types))
		for _, m := range c.Types {
			opts.Types[m.Native] = m.Annotation
		}
	}
	return opts
}
