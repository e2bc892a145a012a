package config

import (
	"github.com/spf13/viper"

	"github.com/phobologic/swiglls/internal/parse"
	"github.com/phobologic/swiglls/internal/resolve"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = "swiglls.toml"

// EnvPrefix prefixes environment overrides, e.g. SWIGLLS_OUTPUT.
const EnvPrefix = "SWIGLLS"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", "meta")
	v.SetDefault("static_marker", parse.DefaultStaticMarker)
	v.SetDefault("callback_types", parse.DefaultOptions().CallbackTypes)
	v.SetDefault("smart_pointers", resolve.DefaultOptions().SmartPointers)
	v.SetDefault("check", false)

	v.SetDefault("log.verbose", false)
	v.SetDefault("log.json", false)
}

// Template is the commented configuration written by "swiglls init".
const Template = `# swiglls configuration

# Directory receiving the generated annotation files.
output = "meta"

# SWIG "view" attribute marking static member functions.
static_marker = "staticmemberfunctionHandler"

# Typedef targets annotated as Lua functions.
callback_types = ["SWIGLUA_REF"]

# Templates treated as owning pointers to their argument.
smart_pointers = [
  "std::shared_ptr", "std::unique_ptr", "std::weak_ptr",
  "shared_ptr", "unique_ptr", "weak_ptr",
]

# Parse every generated file with a Lua grammar before writing it.
check = false

# Extra native to annotation mappings, tried before the built-in rules.
# [[types]]
# native = "std::vector<(int)>"
# annotation = "integer[]"

[log]
verbose = false
json = false
`
