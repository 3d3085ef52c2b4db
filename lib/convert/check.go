// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"

	"github.com/bureau-foundation/msgconv/lib/codec"
	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/wire"
)

// Check decodes the binary file at binaryPath and verifies that it
// survives both conversion paths unchanged: re-encoding the decoded
// record, and converting it to a JSON document and back. It returns
// the file's size in bytes.
//
// A blob can decode cleanly and still fail the check when it is not in
// canonical form (a bool byte other than 0 or 1), or when it holds a
// string that is not valid UTF-8, which JSON cannot carry.
func (c *Converter) Check(binaryPath string) (int, error) {
	data, err := readFile(binaryPath)
	if err != nil {
		return 0, err
	}
	record, err := wire.Decode(data, c.recordType)
	if err != nil {
		return 0, fmt.Errorf("decoding %s: %w", binaryPath, err)
	}

	encoded, err := wire.Encode(record)
	if err != nil {
		return 0, fmt.Errorf("re-encoding %s: %w", binaryPath, err)
	}
	if err := compareEncodings("re-encoding", data, encoded); err != nil {
		return 0, err
	}

	document, err := codec.ToJSON(record)
	if err != nil {
		return 0, fmt.Errorf("converting %s: %w", binaryPath, err)
	}
	parsed, err := jsonnode.Parse(jsonnode.Marshal(document, 0))
	if err != nil {
		return 0, fmt.Errorf("reparsing %s: %w", binaryPath, err)
	}
	reparsed, err := codec.FromJSON(parsed, c.recordType)
	if err != nil {
		return 0, fmt.Errorf("reading back %s: %w", binaryPath, err)
	}
	roundTripped, err := wire.Encode(reparsed)
	if err != nil {
		return 0, fmt.Errorf("re-encoding %s: %w", binaryPath, err)
	}
	if err := compareEncodings("JSON round trip", data, roundTripped); err != nil {
		return 0, err
	}

	c.logger.Debug("checked binary file", "input", binaryPath, "bytes", len(data))
	return len(data), nil
}

// compareEncodings reports the first offset at which got differs from
// want as a MalformedInput error.
func compareEncodings(stage string, want, got []byte) error {
	for offset := range min(len(want), len(got)) {
		if want[offset] != got[offset] {
			return msgerr.Malformed("%s differs at offset %d: input has 0x%02x, %s has 0x%02x",
				stage, offset, want[offset], stage, got[offset])
		}
	}
	if len(want) != len(got) {
		return msgerr.Malformed("%s differs in length: input is %d bytes, %s is %d bytes",
			stage, len(want), stage, len(got))
	}
	return nil
}
