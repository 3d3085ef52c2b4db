// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// Process exit codes. Each classified failure kind has its own code so
// scripts can tell a typo in a type name from a corrupt input file.
const (
	ExitSuccess         = 0
	ExitFailure         = 1
	ExitUsage           = 2
	ExitUnknownType     = 3
	ExitMalformedInput  = 4
	ExitSchemaMismatch  = 5
	ExitValueOutOfRange = 6
	ExitIO              = 7
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, the CLI
// framework exits with the specified code without printing the error
// string: the command is expected to have already written its own
// output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The main function checks for this
// interface on returned errors to distinguish "handled exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode maps an error to a process exit code: 0 for nil, the code
// carried by an [ExitError], the per-kind code for a classified
// [msgerr.Error], and [ExitFailure] for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	switch msgerr.KindOf(err) {
	case msgerr.Usage:
		return ExitUsage
	case msgerr.UnknownType:
		return ExitUnknownType
	case msgerr.MalformedInput:
		return ExitMalformedInput
	case msgerr.SchemaMismatch:
		return ExitSchemaMismatch
	case msgerr.ValueOutOfRange:
		return ExitValueOutOfRange
	case msgerr.IO:
		return ExitIO
	default:
		return ExitFailure
	}
}
