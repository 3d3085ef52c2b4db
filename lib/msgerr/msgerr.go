// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package msgerr classifies conversion failures.
//
// Every layer of msgconv reports failures as an [*Error] carrying a
// [Kind]. The CLI maps kinds to exit codes and prints the message; no
// layer inspects error text. Errors raised deep inside a nested field
// gain path components as they unwind (see [Error.At]), so the final
// message names the offending field:
//
//	points[2].time_from_start.secs: value 5000000000 out of range for int32
//
// Use [KindOf] to classify an arbitrary error chain. Errors that carry
// no *Error anywhere in the chain classify as [Unknown].
package msgerr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Kind classifies a conversion failure.
type Kind uint8

const (
	// Unknown is the kind of errors that did not originate from a
	// classified failure (programming errors, unexpected library
	// failures).
	Unknown Kind = iota

	// Usage indicates the command line was invalid: wrong argument
	// count, conflicting or missing direction flag, bad flag value.
	Usage

	// UnknownType indicates the module or type name does not resolve
	// to a registered type.
	UnknownType

	// MalformedInput indicates the input bytes cannot be interpreted:
	// a binary blob shorter than the type requires, a length prefix
	// past the end of the blob, trailing bytes, invalid base64, or a
	// document that does not parse.
	MalformedInput

	// SchemaMismatch indicates a document is well-formed but does not
	// fit the type: a missing field, a value of the wrong JSON kind, a
	// fixed-length array of the wrong length.
	SchemaMismatch

	// ValueOutOfRange indicates a numeric value does not fit the
	// declared width of its field.
	ValueOutOfRange

	// IO indicates a file could not be opened, read, written, or
	// renamed into place.
	IO
)

// String returns the kind's name as used in log output.
func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case UnknownType:
		return "unknown_type"
	case MalformedInput:
		return "malformed_input"
	case SchemaMismatch:
		return "schema_mismatch"
	case ValueOutOfRange:
		return "value_out_of_range"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Path locates the failure: a dotted field path for codec errors
	// ("pose.position.x", "points[3]"), a file path for IO errors,
	// empty when there is nothing to locate.
	Path string

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns "path: message", or just the message when Path is
// empty.
func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// At returns a copy of e with prefix prepended to its path. An index
// prefix ("[3]") attaches without a separator; a name prefix is joined
// with a dot.
func (e *Error) At(prefix string) *Error {
	copied := *e
	switch {
	case e.Path == "":
		copied.Path = prefix
	case strings.HasPrefix(e.Path, "["):
		copied.Path = prefix + e.Path
	default:
		copied.Path = prefix + "." + e.Path
	}
	return &copied
}

// At prefixes the path of err when err is an *Error, and wraps any
// other error as an Unknown-kind *Error at prefix. Returns nil for a
// nil err.
func At(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) && classified == err {
		return classified.At(prefix)
	}
	if errors.As(err, &classified) {
		return &Error{Kind: classified.Kind, Path: prefix, Err: err}
	}
	return &Error{Kind: Unknown, Path: prefix, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// Unknown.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return Unknown
}

// Is reports whether err's chain contains an *Error of kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Usagef creates a Usage error.
func Usagef(format string, args ...any) *Error {
	return newf(Usage, format, args...)
}

// UnknownTypef creates an UnknownType error.
func UnknownTypef(format string, args ...any) *Error {
	return newf(UnknownType, format, args...)
}

// Malformed creates a MalformedInput error.
func Malformed(format string, args ...any) *Error {
	return newf(MalformedInput, format, args...)
}

// Mismatch creates a SchemaMismatch error.
func Mismatch(format string, args ...any) *Error {
	return newf(SchemaMismatch, format, args...)
}

// OutOfRange creates a ValueOutOfRange error.
func OutOfRange(format string, args ...any) *Error {
	return newf(ValueOutOfRange, format, args...)
}

// IOError wraps a file operation failure. path is the file involved.
// An *fs.PathError cause is reduced to its operation and underlying
// error so the path is not repeated in the message.
func IOError(path string, err error) *Error {
	var pathError *fs.PathError
	if errors.As(err, &pathError) {
		err = fmt.Errorf("%s: %w", pathError.Op, pathError.Err)
	}
	return &Error{Kind: IO, Path: path, Err: err}
}
