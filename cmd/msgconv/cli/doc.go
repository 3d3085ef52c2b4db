// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for msgconv.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/msgconv/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]; see [BindFlags] for the tag grammar.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// [Environment] carries what commands share beyond their flags: the
// loaded configuration, the lazily built type registry, and standard
// output. [Environment.Fail] prints the one-line "Failure: ..." report
// and converts the error into an [ExitError] whose code follows the
// configured exit code mode (see [ExitCode]).
package cli
