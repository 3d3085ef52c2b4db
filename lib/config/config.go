// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file for [Load].
const EnvironmentVariable = "MSGCONV_CONFIG"

// ExitCodeMode selects how failures map to process exit status.
type ExitCodeMode string

const (
	// ExitCodesDistinct exits with a different non-zero status per
	// error kind.
	ExitCodesDistinct ExitCodeMode = "distinct"

	// ExitCodesLegacy always exits 0, reporting failures only on
	// standard output.
	ExitCodesLegacy ExitCodeMode = "legacy"
)

// Config is the msgconv configuration.
type Config struct {
	// Schema configures where record types come from.
	Schema SchemaConfig `yaml:"schema"`

	// Output configures how documents are written.
	Output OutputConfig `yaml:"output"`

	// Log configures diagnostic logging on standard error.
	Log LogConfig `yaml:"log"`

	// ExitCodes selects the exit status convention.
	// Default: distinct
	ExitCodes ExitCodeMode `yaml:"exit_codes"`
}

// SchemaConfig configures the type registry.
type SchemaConfig struct {
	// Builtin loads the embedded std_msgs, geometry_msgs, sensor_msgs,
	// trajectory_msgs, and shape_msgs packages.
	// Default: true
	Builtin bool `yaml:"builtin"`

	// Paths lists additional definitions to load: YAML schema files,
	// .msg files, or directories of .msg files.
	Paths []string `yaml:"paths"`
}

// OutputConfig configures document output.
type OutputConfig struct {
	// Indent is the number of spaces per nesting level. Zero prints
	// JSON on one line.
	// Default: 2
	Indent int `yaml:"indent"`

	// Format is the document format used when the document path has
	// no recognized extension: json, yaml, or cbor. Empty infers from
	// the extension and falls back to json.
	Format string `yaml:"format"`

	// Color controls syntax highlighting of documents printed to a
	// terminal: auto, always, or never.
	// Default: auto
	Color string `yaml:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is the handler: text, json, or auto (text on a terminal,
	// json otherwise).
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given. Values
// present in a file override these field by field.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			Builtin: true,
		},
		Output: OutputConfig{
			Indent: 2,
			Color:  "auto",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
		ExitCodes: ExitCodesDistinct,
	}
}

// Load loads the file named by MSGCONV_CONFIG, or returns Default when
// the variable is unset or empty.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file is
// decoded over Default, then schema paths are expanded and the result
// is validated.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// schema paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	for index, path := range c.Schema.Paths {
		c.Schema.Paths[index] = expandVars(path, vars)
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Accepted values of the enumerated options.
var (
	formatValues   = []string{"", "json", "yaml", "yml", "cbor"}
	colorValues    = []string{"auto", "always", "never"}
	levelValues    = []string{"debug", "info", "warn", "error"}
	logFormats     = []string{"auto", "text", "json"}
	exitCodeValues = []ExitCodeMode{ExitCodesDistinct, ExitCodesLegacy}
)

// Validate checks the configuration and reports every problem found,
// not just the first.
func (c *Config) Validate() error {
	var errs []error

	for index, path := range c.Schema.Paths {
		if path == "" {
			errs = append(errs, fmt.Errorf("schema.paths[%d] is empty", index))
		}
	}

	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		errs = append(errs, fmt.Errorf("output.indent must be between 0 and 16, got %d", c.Output.Indent))
	}
	if !slices.Contains(formatValues, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: json, yaml, cbor (got %q)", c.Output.Format))
	}
	if !slices.Contains(colorValues, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v (got %q)", colorValues, c.Output.Color))
	}

	if !slices.Contains(levelValues, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v (got %q)", levelValues, c.Log.Level))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v (got %q)", logFormats, c.Log.Format))
	}

	if !slices.Contains(exitCodeValues, c.ExitCodes) {
		errs = append(errs, fmt.Errorf("exit_codes must be one of: distinct, legacy (got %q)", c.ExitCodes))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
