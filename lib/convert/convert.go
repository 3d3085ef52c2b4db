// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert ties type resolution, the codecs, and file I/O into
// one conversion per invocation.
//
// A [Converter] resolves its record type once, in [New], and then
// reads and writes files of that type:
//
//	converter, err := convert.New(reg, "std_msgs", "Header", convert.Options{Logger: logger})
//	err = converter.Convert(convert.BinaryToDocument, "header.bin", "header.json", codec.FormatJSON)
//
// Every read opens exactly one file and closes it on all paths.
// Every write goes to a temporary file in the destination directory
// that is renamed into place only after it is fully written, so a
// failed conversion never leaves a partial output file behind.
// File system failures are IO errors (see package msgerr), distinct
// from the codec errors raised while interpreting the contents.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/msgconv/lib/codec"
	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/registry"
	"github.com/bureau-foundation/msgconv/lib/schema"
	"github.com/bureau-foundation/msgconv/lib/wire"
)

// DefaultIndent is the document indentation used when Options.Indent
// is zero.
const DefaultIndent = 2

// Direction selects which side of a conversion is the input.
type Direction int

const (
	// BinaryToDocument reads a binary blob and writes a document.
	BinaryToDocument Direction = iota + 1

	// DocumentToBinary reads a document and writes a binary blob.
	DocumentToBinary
)

// String returns the direction as the CLI names it.
func (d Direction) String() string {
	switch d {
	case BinaryToDocument:
		return "binary-to-json"
	case DocumentToBinary:
		return "json-to-binary"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Options configures a Converter.
type Options struct {
	// Indent is the number of spaces per nesting level in text
	// documents. Zero selects DefaultIndent.
	Indent int

	// Compact prints JSON documents on a single line, ignoring Indent.
	Compact bool

	// Logger receives one line per completed conversion. Nil discards.
	Logger *slog.Logger
}

// Converter converts files of a single resolved record type.
type Converter struct {
	recordType *schema.Type
	indent     int
	logger     *slog.Logger
}

// New resolves module and typeName through resolver and returns a
// converter for the resulting type. Resolution happens exactly once.
func New(resolver registry.Resolver, module, typeName string, options Options) (*Converter, error) {
	recordType, err := resolver.Resolve(module, typeName)
	if err != nil {
		return nil, err
	}
	indent := options.Indent
	if indent == 0 {
		indent = DefaultIndent
	}
	if options.Compact {
		indent = 0
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Converter{
		recordType: recordType,
		indent:     indent,
		logger:     logger.With("type", recordType.FullName()),
	}, nil
}

// Type returns the converter's resolved record type.
func (c *Converter) Type() *schema.Type {
	return c.recordType
}

// ReadBinaryFile decodes the binary blob at path.
func (c *Converter) ReadBinaryFile(path string) (*message.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	record, err := wire.Decode(data, c.recordType)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return record, nil
}

// WriteBinaryFile encodes record and writes it to path.
func (c *Converter) WriteBinaryFile(record *message.Record, path string) error {
	data, err := wire.Encode(record)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.recordType.FullName(), err)
	}
	return writeFileAtomic(path, data)
}

// ReadJSONFile parses the JSON document at path into a record.
func (c *Converter) ReadJSONFile(path string) (*message.Record, error) {
	return c.ReadDocumentFile(path, codec.FormatJSON)
}

// WriteJSONFile writes record to path as a JSON document.
func (c *Converter) WriteJSONFile(record *message.Record, path string) error {
	return c.WriteDocumentFile(record, path, codec.FormatJSON)
}

// ReadDocumentFile parses the document at path, in the given format,
// into a record.
func (c *Converter) ReadDocumentFile(path string, format codec.Format) (*message.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	node, err := codec.UnmarshalDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	record, err := codec.FromJSON(node, c.recordType)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", c.recordType.FullName(), path, err)
	}
	return record, nil
}

// WriteDocumentFile writes record to path as a document in the given
// format.
func (c *Converter) WriteDocumentFile(record *message.Record, path string, format codec.Format) error {
	data, err := c.MarshalDocument(record, format)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// MarshalDocument renders record as a document in the given format
// using the converter's indentation.
func (c *Converter) MarshalDocument(record *message.Record, format codec.Format) ([]byte, error) {
	node, err := codec.ToJSON(record)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", c.recordType.FullName(), err)
	}
	return c.marshalNode(node, format)
}

func (c *Converter) marshalNode(node *jsonnode.Node, format codec.Format) ([]byte, error) {
	indent := c.indent
	if format == codec.FormatYAML && indent == 0 {
		indent = DefaultIndent
	}
	return codec.MarshalDocument(node, format, indent)
}

// Convert performs one conversion between binaryPath and documentPath
// in the given direction. The output file is only replaced when the
// whole conversion succeeds.
func (c *Converter) Convert(direction Direction, binaryPath, documentPath string, format codec.Format) error {
	switch direction {
	case BinaryToDocument:
		record, err := c.ReadBinaryFile(binaryPath)
		if err != nil {
			return err
		}
		if err := c.WriteDocumentFile(record, documentPath, format); err != nil {
			return err
		}
		c.logger.Info("converted binary to document",
			"input", binaryPath,
			"output", documentPath,
			"format", string(format),
		)
		return nil
	case DocumentToBinary:
		record, err := c.ReadDocumentFile(documentPath, format)
		if err != nil {
			return err
		}
		if err := c.WriteBinaryFile(record, binaryPath); err != nil {
			return err
		}
		c.logger.Info("converted document to binary",
			"input", documentPath,
			"output", binaryPath,
			"format", string(format),
		)
		return nil
	default:
		return msgerr.Usagef("Choose a single direction of conversion!")
	}
}

// readFile reads the whole file at path.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, msgerr.IOError(path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, msgerr.IOError(path, err)
	}
	return data, nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs
// it, and renames it over path. On any failure the temporary file is
// removed and path is left untouched.
func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return msgerr.IOError(path, err)
	}
	temporaryPath := file.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	// Write, sync, close, in that order.
	if _, err := file.Write(data); err != nil {
		file.Close()
		return msgerr.IOError(path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return msgerr.IOError(path, err)
	}
	if err := file.Close(); err != nil {
		return msgerr.IOError(path, err)
	}
	// CreateTemp makes the file 0600; outputs are ordinary files.
	if err := os.Chmod(temporaryPath, 0o644); err != nil {
		return msgerr.IOError(path, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return msgerr.IOError(path, err)
	}
	success = true
	return nil
}
