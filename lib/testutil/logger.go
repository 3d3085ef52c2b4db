// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// CaptureLogger returns a logger that writes JSON lines at debug level
// and above into the returned buffer.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buffer
}

// LogRecords decodes every JSON line in buffer.
func LogRecords(t testing.TB, buffer *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(buffer.Bytes()))
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decoding log line %q: %v", scanner.Text(), err)
		}
		records = append(records, record)
	}
	return records
}
