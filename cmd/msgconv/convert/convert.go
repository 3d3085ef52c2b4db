// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/convert"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// errDirection is reported when not exactly one direction flag is set.
const errDirection = "Choose a single direction of conversion!"

type convertParams struct {
	BinaryToJSON bool   `flag:"binary-to-json,b" desc:"convert the binary file into the document"`
	JSONToBinary bool   `flag:"json-to-binary,j" desc:"convert the document into the binary file"`
	Format       string `flag:"format" desc:"document format: json, yaml, or cbor (default: from the document's extension)"`
	Indent       int    `flag:"indent" desc:"spaces per nesting level in text documents; 0 prints compact JSON"`
}

// Command returns the "convert" command.
func Command(environment *cli.Environment) *cli.Command {
	var params convertParams

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert a message between its binary and document forms",
		Description: `Convert one message file between the binary wire encoding and a
structured document (JSON by default, or YAML or CBOR).

The message type is named by a module (a package such as "std_msgs",
also accepted as "std_msgs.msg") and a type name. Exactly one
direction flag selects which file is read; the other file is
replaced only when the whole conversion succeeds.

Documents written by msgconv use these conventions: time and duration
values are {"secs": S, "nsecs": N} objects, uint8[] and char[] fields
are base64 strings, and non-finite floats are the strings "NaN",
"Infinity", and "-Infinity". When reading, unknown keys are ignored,
comments and trailing commas are allowed, and byte fields also accept
an array of integers.`,
		Usage: "msgconv convert <module> <type> <binary_path> <json_path> (--binary-to-json | --json-to-binary)",
		Examples: []cli.Example{
			{
				Description: "Decode a captured header into JSON",
				Command:     "msgconv convert std_msgs Header header.bin header.json --binary-to-json",
			},
			{
				Description: "Encode a YAML trajectory back into binary",
				Command:     "msgconv convert trajectory_msgs JointTrajectory traj.bin traj.yaml -j",
			},
		},
		ArgumentAliases: map[string]string{
			"-b2j": "--binary-to-json",
			"-j2b": "--json-to-binary",
		},
		Flags: func() *pflag.FlagSet {
			params = convertParams{Indent: environment.Config.Output.Indent}
			return cli.FlagsFromParams("convert", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return environment.Fail(runConvert(environment, params, args, logger))
		},
	}
}

func runConvert(environment *cli.Environment, params convertParams, args []string, logger *slog.Logger) error {
	if err := checkArgs(args, "module", "type", "binary path", "document path"); err != nil {
		return err
	}
	direction, err := parseDirection(params.BinaryToJSON, params.JSONToBinary)
	if err != nil {
		return err
	}
	if err := checkIndent(params.Indent); err != nil {
		return err
	}
	module, typeName, binaryPath, documentPath := args[0], args[1], args[2], args[3]

	format, err := documentFormat(params.Format, documentPath, environment.Config.Output.Format)
	if err != nil {
		return err
	}
	types, err := environment.Registry()
	if err != nil {
		return err
	}
	converter, err := convert.New(types, module, typeName, convert.Options{
		Indent:  params.Indent,
		Compact: params.Indent == 0,
		Logger:  logger.With("command", "convert", "direction", direction.String()),
	})
	if err != nil {
		return err
	}
	return converter.Convert(direction, binaryPath, documentPath, format)
}

// parseDirection maps the two direction flags to a direction. Exactly
// one must be set.
func parseDirection(binaryToJSON, jsonToBinary bool) (convert.Direction, error) {
	switch {
	case binaryToJSON && !jsonToBinary:
		return convert.BinaryToDocument, nil
	case jsonToBinary && !binaryToJSON:
		return convert.DocumentToBinary, nil
	default:
		return 0, msgerr.Usagef(errDirection)
	}
}
