// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

type describeParams struct {
	Full bool `flag:"full" desc:"also print the definition of every nested message type"`
}

// DescribeCommand returns the "describe" command.
func DescribeCommand(environment *cli.Environment) *cli.Command {
	var params describeParams

	return &cli.Command{
		Name:    "describe",
		Summary: "Print a message type's definition, fingerprint, and size",
		Description: `Print the canonical definition of a message type: constants and
fields in declaration order, without comments.

The header reports the type's fingerprint, a BLAKE3 digest of its
layout that changes whenever the binary encoding would, and its
encoded size: exact for types without strings or variable-length
arrays, otherwise the minimum.`,
		Usage: "msgconv describe <module> <type> [--full]",
		Examples: []cli.Example{
			{
				Description: "Show the fields of a stamped pose",
				Command:     "msgconv describe geometry_msgs PoseStamped",
			},
			{
				Description: "Include every nested type",
				Command:     "msgconv describe trajectory_msgs JointTrajectory --full",
			},
		},
		Flags: func() *pflag.FlagSet {
			params = describeParams{}
			return cli.FlagsFromParams("describe", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return environment.Fail(runDescribe(environment, params, args, logger))
		},
	}
}

func runDescribe(environment *cli.Environment, params describeParams, args []string, logger *slog.Logger) error {
	if len(args) != 2 {
		return msgerr.Usagef("expected 2 arguments (module, type), got %d", len(args))
	}
	types, err := environment.Registry()
	if err != nil {
		return err
	}
	recordType, err := types.Resolve(args[0], args[1])
	if err != nil {
		return err
	}
	logger.Debug("described type", "command", "describe", "type", recordType.FullName())
	return writeDescription(environment.Stdout, recordType, params.Full)
}

// writeDescription prints the header lines and definition of t.
func writeDescription(w io.Writer, t *schema.Type, full bool) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n", t.FullName())
	fmt.Fprintf(&builder, "# fingerprint: %s\n", t.Fingerprint())
	if size, fixed := t.FixedSize(); fixed {
		fmt.Fprintf(&builder, "# size: %d bytes\n", size)
	} else {
		fmt.Fprintf(&builder, "# size: variable, at least %d bytes\n", t.MinSize())
	}
	if full {
		builder.WriteString(t.FullText())
	} else {
		builder.WriteString(t.Text())
	}
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return msgerr.IOError("standard output", err)
	}
	return nil
}
