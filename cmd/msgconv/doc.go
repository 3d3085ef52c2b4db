// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// msgconv converts structured messages between their binary wire
// encoding and JSON, YAML, or CBOR documents.
//
// The central command converts one file in one direction:
//
//	msgconv convert <module> <type> <binary_path> <json_path> (--binary-to-json | --json-to-binary)
//
// show, check, describe, and types inspect messages and the type
// registry. Run "msgconv --help" for the full list.
//
// Configuration is read from the YAML file named by $MSGCONV_CONFIG
// (see package lib/config); without it the builtin message packages
// and default output settings are used.
//
// Conversion failures print "Failure: <message>" on standard output
// and exit with a code that names the failure kind: 2 usage, 3 unknown
// type, 4 malformed input, 5 schema mismatch, 6 value out of range, 7
// I/O, 1 anything else. Setting exit_codes: legacy in the
// configuration makes those failures exit 0.
package main
