// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert implements the msgconv commands that operate on
// message files: convert (binary to document and back), show (print a
// binary file as a document), and check (verify a binary file
// survives conversion unchanged).
//
// Each command resolves its type once, reports any failure as a single
// "Failure: <message>" line on standard output, and exits with the
// code for the failure's kind (see cli.ExitCode).
package convert
