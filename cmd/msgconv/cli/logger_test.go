// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		format   string
		wantJSON bool
	}{
		{"auto on terminal", true, "auto", false},
		{"auto when piped", false, "auto", true},
		{"empty means auto", false, "", true},
		{"text forced", false, "text", false},
		{"json forced", true, "json", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			logger, err := newLogger(&output, test.terminal, "info", test.format)
			if err != nil {
				t.Fatal(err)
			}
			logger.Info("converted binary to document", "type", "std_msgs/Header")

			line := strings.TrimSpace(output.String())
			isJSON := json.Valid([]byte(line))
			if isJSON != test.wantJSON {
				t.Errorf("output %q: JSON = %v, want %v", line, isJSON, test.wantJSON)
			}
			if !strings.Contains(line, "std_msgs/Header") {
				t.Errorf("output %q missing attribute", line)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var output bytes.Buffer
	logger, err := newLogger(&output, false, "warn", "json")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(output.String(), "hidden") || !strings.Contains(output.String(), "shown") {
		t.Errorf("output = %q, want only the warning", output.String())
	}
}

func TestNewLoggerErrors(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, false, "loud", "json"); err == nil {
		t.Error("newLogger accepted level \"loud\"")
	}
	if _, err := newLogger(&bytes.Buffer{}, false, "info", "xml"); err == nil {
		t.Error("newLogger accepted format \"xml\"")
	}
}
