// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete msgconv command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	convertcmd "github.com/bureau-foundation/msgconv/cmd/msgconv/convert"
	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	schemacmd "github.com/bureau-foundation/msgconv/cmd/msgconv/schema"
	"github.com/bureau-foundation/msgconv/lib/version"
)

// Root builds and returns the msgconv command tree over environment.
func Root(environment *cli.Environment) *cli.Command {
	return &cli.Command{
		Name: "msgconv",
		Description: `msgconv: convert structured messages between their binary wire
encoding and JSON, YAML, or CBOR documents.

Message types come from the builtin std_msgs, geometry_msgs,
sensor_msgs, shape_msgs, and trajectory_msgs packages plus any schema
paths named in the file $MSGCONV_CONFIG points at.`,
		Subcommands: []*cli.Command{
			convertcmd.Command(environment),
			convertcmd.ShowCommand(environment),
			convertcmd.CheckCommand(environment),
			schemacmd.DescribeCommand(environment),
			schemacmd.TypesCommand(environment),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Fprintf(environment.Stdout, "msgconv %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
