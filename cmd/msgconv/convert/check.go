// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/convert"
)

// CheckCommand returns the "check" command.
func CheckCommand(environment *cli.Environment) *cli.Command {
	return &cli.Command{
		Name:    "check",
		Summary: "Verify a binary message file decodes and re-encodes unchanged",
		Description: `Decode a binary message file, then encode the result again both
directly and by way of a JSON document. Prints "valid (<n> bytes)" when
both encodings match the input byte for byte, and otherwise reports the
first offset that differs.

A file can decode and still fail the check when it is not in
canonical form: a bool byte other than 0 or 1, or a string that is
not valid UTF-8.`,
		Usage: "msgconv check <module> <type> <binary_path>",
		Examples: []cli.Example{
			{
				Description: "Verify a captured pose",
				Command:     "msgconv check geometry_msgs PoseStamped pose.bin",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return environment.Fail(runCheck(environment, args, logger))
		},
	}
}

func runCheck(environment *cli.Environment, args []string, logger *slog.Logger) error {
	if err := checkArgs(args, "module", "type", "binary path"); err != nil {
		return err
	}
	types, err := environment.Registry()
	if err != nil {
		return err
	}
	converter, err := convert.New(types, args[0], args[1], convert.Options{
		Logger: logger.With("command", "check"),
	})
	if err != nil {
		return err
	}
	size, err := converter.Check(args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(environment.Stdout, "valid (%d bytes)\n", size)
	return nil
}
