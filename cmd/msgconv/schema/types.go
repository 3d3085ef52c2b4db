// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/registry"
)

// matchColor is the ANSI color for matched characters.
const matchColor = "2"

type typesParams struct {
	Packages bool   `flag:"packages" desc:"list packages instead of types"`
	Color    string `flag:"color" desc:"highlight matched characters: auto, always, or never"`
}

// TypesCommand returns the "types" command.
func TypesCommand(environment *cli.Environment) *cli.Command {
	var params typesParams

	return &cli.Command{
		Name:    "types",
		Summary: "List registered message types",
		Description: `List every registered message type, one full name per line, sorted.

With a pattern, only types that fuzzy-match it are listed, best
match first. Matching is case-insensitive unless the pattern contains
an upper case letter. On a color terminal the matched characters are
highlighted.`,
		Usage: "msgconv types [pattern] [flags]",
		Examples: []cli.Example{
			{
				Description: "List everything, including types from configured schema paths",
				Command:     "msgconv types",
			},
			{
				Description: "Find stamped types",
				Command:     "msgconv types stamped",
			},
		},
		Flags: func() *pflag.FlagSet {
			params = typesParams{Color: environment.Config.Output.Color}
			return cli.FlagsFromParams("types", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return environment.Fail(runTypes(environment, params, args, logger))
		},
	}
}

func runTypes(environment *cli.Environment, params typesParams, args []string, logger *slog.Logger) error {
	if len(args) > 1 {
		return msgerr.Usagef("expected at most 1 argument (pattern), got %d", len(args))
	}
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	types, err := environment.Registry()
	if err != nil {
		return err
	}

	var matches []registry.Match
	if params.Packages {
		matches = types.MatchPackages(pattern)
	} else {
		matches = types.Match(pattern)
	}
	logger.Debug("listed types", "command", "types", "pattern", pattern, "matches", len(matches))
	if len(matches) == 0 && pattern != "" {
		return msgerr.UnknownTypef("nothing registered matches %q", pattern)
	}

	profile := cli.ColorProfile(params.Color, environment.Stdout)
	var builder strings.Builder
	for _, match := range matches {
		builder.WriteString(highlightMatch(match, profile))
		builder.WriteByte('\n')
	}
	if _, err := fmt.Fprint(environment.Stdout, builder.String()); err != nil {
		return msgerr.IOError("standard output", err)
	}
	return nil
}

// highlightMatch renders a match's name with its matched characters
// styled for profile. The Ascii profile returns the name unchanged.
func highlightMatch(match registry.Match, profile termenv.Profile) string {
	if profile == termenv.Ascii || len(match.Positions) == 0 {
		return match.Name
	}
	matched := make(map[int]bool, len(match.Positions))
	for _, position := range match.Positions {
		matched[position] = true
	}
	var builder strings.Builder
	for index, character := range []rune(match.Name) {
		if matched[index] {
			builder.WriteString(profile.String(string(character)).Foreground(profile.Color(matchColor)).Bold().String())
		} else {
			builder.WriteRune(character)
		}
	}
	return builder.String()
}
