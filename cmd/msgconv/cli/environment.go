// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/msgconv/lib/config"
	"github.com/bureau-foundation/msgconv/lib/registry"
)

// Environment holds the state shared by every command of one
// invocation.
type Environment struct {
	// Config is the loaded and validated configuration.
	Config *config.Config

	// Stdout receives command output and failure reports.
	Stdout io.Writer

	registry *registry.Registry
}

// NewEnvironment returns an environment over cfg that writes to stdout.
func NewEnvironment(cfg *config.Config, stdout io.Writer) *Environment {
	return &Environment{Config: cfg, Stdout: stdout}
}

// Registry returns the type registry described by the configuration:
// the builtin packages (unless schema.builtin is false) plus every
// schema path. The registry is built on first use and reused after.
func (e *Environment) Registry() (*registry.Registry, error) {
	if e.registry != nil {
		return e.registry, nil
	}
	var types *registry.Registry
	if e.Config.Schema.Builtin {
		types = registry.Builtin()
	} else {
		types = registry.New()
	}
	if err := types.LoadPaths(e.Config.Schema.Paths); err != nil {
		return nil, fmt.Errorf("loading schema paths: %w", err)
	}
	e.registry = types
	return types, nil
}

// Fail reports err on Stdout as "Failure: <message>" and returns an
// [ExitError] carrying the exit code for err. In the legacy exit code
// mode the code is always 0. Fail returns nil for a nil err.
func (e *Environment) Fail(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintf(e.Stdout, "Failure: %v\n", err)
	return &ExitError{Code: e.ExitCode(err)}
}

// ExitCode is [ExitCode] subject to the configured exit code mode.
func (e *Environment) ExitCode(err error) int {
	if e.Config.ExitCodes == config.ExitCodesLegacy {
		return ExitSuccess
	}
	return ExitCode(err)
}
