// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/msgconv/lib/codec"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// documentFormat picks the document format for a conversion: the
// --format flag when given, else the document path's extension when
// it names a format, else the configured output format, else JSON.
func documentFormat(flagValue, documentPath, configured string) (codec.Format, error) {
	if flagValue != "" {
		return codec.ParseFormat(flagValue)
	}
	switch strings.ToLower(filepath.Ext(documentPath)) {
	case ".json", ".yaml", ".yml", ".cbor":
		return codec.FormatFromPath(documentPath), nil
	}
	return codec.ParseFormat(configured)
}

// checkIndent rejects negative indentation.
func checkIndent(indent int) error {
	if indent < 0 {
		return msgerr.Usagef("--indent must not be negative, got %d", indent)
	}
	return nil
}

// checkArgs requires exactly the named positional arguments.
func checkArgs(args []string, names ...string) error {
	if len(args) != len(names) {
		return msgerr.Usagef("expected %d arguments (%s), got %d",
			len(names), strings.Join(names, ", "), len(args))
	}
	return nil
}
