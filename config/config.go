// Package config loads the optional nag.yaml project file. The file
// supplies defaults for the compile command: debug switches and a
// default target list used when the command line names no paths.
// Explicit command-line options always win over the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no config
// path is given.
const DefaultFileName = "nag.yaml"

// Config mirrors the nag.yaml layout.
type Config struct {
	// Debug enables user-visible diagnostics, like --debug.
	Debug bool `yaml:"debug"`

	// DebugCompiler enables the parse-trace log, like --debug-compiler.
	DebugCompiler bool `yaml:"debug_compiler"`

	// AST enables AST emission next to each input, like --ast.
	AST bool `yaml:"ast"`

	// Paths is the default target list used when the command line
	// names none.
	Paths []string `yaml:"paths"`

	// PathsRecursive makes the default target list descend into
	// directories.
	PathsRecursive bool `yaml:"paths_recursive"`
}

// Load reads and parses a YAML configuration file.
func Load(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads nag.yaml from the working directory. A missing file
// is not an error; it yields an empty config.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultFileName); err != nil {
		return &Config{}, nil
	}
	return Load(DefaultFileName)
}
