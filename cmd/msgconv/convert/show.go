// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/codec"
	"github.com/bureau-foundation/msgconv/lib/convert"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// highlightStyle is the chroma style for highlighted documents.
const highlightStyle = "monokai"

type showParams struct {
	Format string `flag:"format" desc:"document format: json, yaml, or cbor (cbor prints diagnostic notation)"`
	Color  string `flag:"color" desc:"syntax highlighting: auto, always, or never"`
	Indent int    `flag:"indent" desc:"spaces per nesting level; 0 prints compact JSON"`
}

// ShowCommand returns the "show" command.
func ShowCommand(environment *cli.Environment) *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print a binary message file as a document",
		Description: `Decode a binary message file and print it to standard output as a
document. On a color terminal the document is syntax highlighted.

With --format cbor the document is encoded as CBOR and printed in
RFC 8949 diagnostic notation, which shows exactly what a CBOR
conversion would write.`,
		Usage: "msgconv show <module> <type> <binary_path> [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect an IMU sample",
				Command:     "msgconv show sensor_msgs Imu imu.bin",
			},
			{
				Description: "Print YAML without color for a pager",
				Command:     "msgconv show std_msgs Header header.bin --format yaml --color never | less",
			},
		},
		Flags: func() *pflag.FlagSet {
			params = showParams{
				Format: environment.Config.Output.Format,
				Color:  environment.Config.Output.Color,
				Indent: environment.Config.Output.Indent,
			}
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return environment.Fail(runShow(environment, params, args, logger))
		},
	}
}

func runShow(environment *cli.Environment, params showParams, args []string, logger *slog.Logger) error {
	if err := checkArgs(args, "module", "type", "binary path"); err != nil {
		return err
	}
	if err := checkIndent(params.Indent); err != nil {
		return err
	}
	format, err := codec.ParseFormat(params.Format)
	if err != nil {
		return err
	}
	switch params.Color {
	case cli.ColorAuto, cli.ColorAlways, cli.ColorNever:
	default:
		return msgerr.Usagef("--color must be auto, always, or never, got %q", params.Color)
	}

	types, err := environment.Registry()
	if err != nil {
		return err
	}
	converter, err := convert.New(types, args[0], args[1], convert.Options{
		Indent:  params.Indent,
		Compact: params.Indent == 0,
		Logger:  logger.With("command", "show"),
	})
	if err != nil {
		return err
	}
	record, err := converter.ReadBinaryFile(args[2])
	if err != nil {
		return err
	}
	document, err := converter.MarshalDocument(record, format)
	if err != nil {
		return err
	}

	var text string
	if format == codec.FormatCBOR {
		text, err = codec.Diagnose(document)
		if err != nil {
			return err
		}
	} else {
		text = string(document)
	}
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}

	profile := cli.ColorProfile(params.Color, environment.Stdout)
	if err := writeHighlighted(environment.Stdout, text, format, profile); err != nil {
		return msgerr.IOError("standard output", err)
	}
	return nil
}

// writeHighlighted writes text to w, highlighted with chroma for the
// color profile. The Ascii profile writes text unchanged.
func writeHighlighted(w io.Writer, text string, format codec.Format, profile termenv.Profile) error {
	formatter := chromaFormatter(profile)
	if formatter == "" {
		_, err := io.WriteString(w, text)
		return err
	}

	lexer := string(format)
	if format == codec.FormatCBOR {
		// Diagnostic notation is close enough to JSON for highlighting.
		lexer = string(codec.FormatJSON)
	}
	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, text, lexer, formatter, highlightStyle); err != nil {
		_, err := io.WriteString(w, text)
		return err
	}
	_, err := w.Write(highlighted.Bytes())
	return err
}

// chromaFormatter names the chroma terminal formatter for a profile,
// or "" for no highlighting.
func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}
