// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "msgconv.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Schema.Builtin {
		t.Error("expected schema.builtin=true")
	}
	if cfg.Output.Indent != 2 {
		t.Errorf("expected output.indent=2, got %d", cfg.Output.Indent)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log.level=warn, got %s", cfg.Log.Level)
	}
	if cfg.ExitCodes != ExitCodesDistinct {
		t.Errorf("expected exit_codes=distinct, got %s", cfg.ExitCodes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_WithoutEnvironmentUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() without %s differs from Default (-want +got):\n%s", EnvironmentVariable, diff)
	}
}

func TestLoad_WithEnvironment(t *testing.T) {
	configPath := writeConfig(t, `
exit_codes: legacy
output:
  indent: 4
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ExitCodes != ExitCodesLegacy {
		t.Errorf("expected exit_codes=legacy, got %s", cfg.ExitCodes)
	}
	if cfg.Output.Indent != 4 {
		t.Errorf("expected output.indent=4, got %d", cfg.Output.Indent)
	}
	// Unset values keep their defaults.
	if cfg.Output.Color != "auto" || !cfg.Schema.Builtin {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("MSGCONV_TEST_ROOT", "/srv/types")
	t.Setenv("HOME", "/home/tester")

	configPath := writeConfig(t, `
schema:
  builtin: false
  paths:
    - ${HOME}/ros/my_msgs
    - ${MSGCONV_TEST_ROOT}/vendor.yaml
    - ${MSGCONV_TEST_UNSET:-/opt/fallback}

output:
  indent: 0
  format: yaml
  color: never

log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	want := &Config{
		Schema: SchemaConfig{
			Builtin: false,
			Paths: []string{
				"/home/tester/ros/my_msgs",
				"/srv/types/vendor.yaml",
				"/opt/fallback",
			},
		},
		Output:    OutputConfig{Indent: 0, Format: "yaml", Color: "never"},
		Log:       LogConfig{Level: "debug", Format: "json"},
		ExitCodes: ExitCodesDistinct,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "# nothing configured\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty config differs from Default (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "outptu:\n  indent: 2\n", "outptu"},
		{"bad yaml", "output: [\n", "parsing config"},
		{"wrong type", "output:\n  indent: two\n", "parsing config"},
		{"invalid value", "exit_codes: sometimes\n", "exit_codes must be one of"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, test.content))
			if err == nil {
				t.Fatal("LoadFile succeeded")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Schema.Paths = []string{"", "/ok"}
	cfg.Output.Indent = -1
	cfg.Output.Format = "xml"
	cfg.Output.Color = "sometimes"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.ExitCodes = "random"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	for _, want := range []string{
		"schema.paths[0]",
		"output.indent",
		"output.format",
		"output.color",
		"log.level",
		"log.format",
		"exit_codes",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error does not mention %s:\n%v", want, err)
		}
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("MSGCONV_TEST_VALUE", "from-env")
	vars := map[string]string{"HOME": "/home/x"}

	tests := map[string]string{
		"${HOME}/a":                         "/home/x/a",
		"${MSGCONV_TEST_VALUE}":             "from-env",
		"${MSGCONV_TEST_MISSING:-fallback}": "fallback",
		"${MSGCONV_TEST_MISSING}":           "",
		"plain/path":                        "plain/path",
	}
	for input, want := range tests {
		if got := expandVars(input, vars); got != want {
			t.Errorf("expandVars(%q) = %q, want %q", input, got, want)
		}
	}
}
