// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command operations
// at the named level ("debug", "info", "warn", "error"). With format
// "auto", uses slog.TextHandler when stderr is a terminal and
// slog.JSONHandler when stderr is piped or redirected (CI, scripts,
// tests). "text" and "json" force one handler.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "convert", "type", recordType.FullName())
func NewCommandLogger(level, format string) (*slog.Logger, error) {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level, format)
}

func newLogger(output io.Writer, terminal bool, level, format string) (*slog.Logger, error) {
	var logLevel slog.Level
	if level != "" {
		if err := logLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	options := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(output, options)
	case "json":
		handler = slog.NewJSONHandler(output, options)
	case "", "auto":
		if terminal {
			handler = slog.NewTextHandler(output, options)
		} else {
			handler = slog.NewJSONHandler(output, options)
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}
