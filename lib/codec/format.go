// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// Format is a document format: the text (or CBOR) side of a
// conversion.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported document formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat parses a format name. "yml" is accepted for YAML; the
// empty string is JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return "", msgerr.Usagef("unknown document format %q (supported: json, yaml, cbor)", name)
	}
}

// FormatFromPath infers a format from a file extension, falling back
// to JSON for unrecognized extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	default:
		return FormatJSON
	}
}

// Binary reports whether documents of the format are not text.
func (f Format) Binary() bool {
	return f == FormatCBOR
}

// MarshalDocument prints a document tree in the given format. indent
// applies to the text formats: JSON prints compactly when it is 0.
func MarshalDocument(node *jsonnode.Node, format Format, indent int) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return jsonnode.Marshal(node, indent), nil
	case FormatYAML:
		return marshalYAML(node, indent)
	case FormatCBOR:
		return marshalCBOR(node)
	default:
		return nil, msgerr.Usagef("unknown document format %q", string(format))
	}
}

// UnmarshalDocument parses a document in the given format into a tree.
func UnmarshalDocument(data []byte, format Format) (*jsonnode.Node, error) {
	switch format {
	case FormatJSON, "":
		return jsonnode.Parse(data)
	case FormatYAML:
		return unmarshalYAML(data)
	case FormatCBOR:
		return unmarshalCBOR(data)
	default:
		return nil, msgerr.Usagef("unknown document format %q", string(format))
	}
}
