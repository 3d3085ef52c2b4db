// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/cmd/msgconv/commands"
	"github.com/bureau-foundation/msgconv/lib/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one msgconv invocation and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	logger, err := cli.NewCommandLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cli.ExitUsage
	}

	environment := cli.NewEnvironment(cfg, stdout)
	if err := commands.Root(environment).Execute(context.Background(), args, logger); err != nil {
		// Commands that print their own failure report return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			return coder.ExitCode()
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
