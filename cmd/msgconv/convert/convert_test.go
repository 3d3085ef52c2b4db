// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"context"
	"encoding/binary"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/msgconv/cmd/msgconv/cli"
	"github.com/bureau-foundation/msgconv/lib/codec"
	"github.com/bureau-foundation/msgconv/lib/config"
	"github.com/bureau-foundation/msgconv/lib/testutil"
)

// headerBlob is std_msgs/Header{seq: 42, stamp: {1, 2}, frame_id: "map"}.
func headerBlob() []byte {
	var blob []byte
	blob = binary.LittleEndian.AppendUint32(blob, 42)
	blob = binary.LittleEndian.AppendUint32(blob, 1)
	blob = binary.LittleEndian.AppendUint32(blob, 2)
	blob = binary.LittleEndian.AppendUint32(blob, 3)
	return append(blob, "map"...)
}

const headerJSON = `{
  "seq": 42,
  "stamp": {
    "secs": 1,
    "nsecs": 2
  },
  "frame_id": "map"
}
`

// execute runs the command built by newCommand with args and returns
// its standard output and exit code.
func execute(t *testing.T, cfg *config.Config, newCommand func(*cli.Environment) *cli.Command, args ...string) (string, int) {
	t.Helper()
	var stdout bytes.Buffer
	command := newCommand(cli.NewEnvironment(cfg, &stdout))
	command.HelpOutput = &bytes.Buffer{}
	err := command.Execute(context.Background(), args, slog.New(slog.DiscardHandler))
	return stdout.String(), cli.ExitCode(err)
}

func TestConvertDirection(t *testing.T) {
	directory := t.TempDir()
	binaryPath := testutil.WriteFile(t, directory, "header.bin", headerBlob())
	documentPath := filepath.Join(directory, "header.json")

	tests := []struct {
		name string
		mode config.ExitCodeMode
		args []string
		code int
	}{
		{"neither", config.ExitCodesDistinct, nil, cli.ExitUsage},
		{"both", config.ExitCodesDistinct, []string{"-b", "-j"}, cli.ExitUsage},
		{"both long", config.ExitCodesDistinct, []string{"--binary-to-json", "--json-to-binary"}, cli.ExitUsage},
		{"both legacy spellings", config.ExitCodesDistinct, []string{"-b2j", "-j2b"}, cli.ExitUsage},
		{"neither in legacy mode", config.ExitCodesLegacy, nil, cli.ExitSuccess},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.ExitCodes = test.mode
			args := append([]string{"std_msgs", "Header", binaryPath, documentPath}, test.args...)

			stdout, code := execute(t, cfg, Command, args...)
			if want := "Failure: Choose a single direction of conversion!\n"; stdout != want {
				t.Errorf("stdout = %q, want %q", stdout, want)
			}
			if code != test.code {
				t.Errorf("exit code = %d, want %d", code, test.code)
			}
			if names := testutil.DirNames(t, directory); len(names) != 1 {
				t.Errorf("directory = %v, want only the input", names)
			}
		})
	}
}

func TestConvertBothDirections(t *testing.T) {
	for _, flags := range [][2]string{
		{"--binary-to-json", "--json-to-binary"},
		{"-b", "-j"},
		{"-b2j", "-j2b"},
	} {
		t.Run(flags[0], func(t *testing.T) {
			directory := t.TempDir()
			binaryPath := testutil.WriteFile(t, directory, "header.bin", headerBlob())
			documentPath := filepath.Join(directory, "header.json")

			stdout, code := execute(t, config.Default(), Command, "std_msgs.msg", "Header", binaryPath, documentPath, flags[0])
			if code != cli.ExitSuccess || stdout != "" {
				t.Fatalf("binary to JSON: code %d, stdout %q", code, stdout)
			}
			if diff := cmp.Diff(headerJSON, string(testutil.ReadFile(t, documentPath))); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}

			outputPath := filepath.Join(directory, "out.bin")
			stdout, code = execute(t, config.Default(), Command, "std_msgs", "Header", outputPath, documentPath, flags[1])
			if code != cli.ExitSuccess || stdout != "" {
				t.Fatalf("JSON to binary: code %d, stdout %q", code, stdout)
			}
			if got := testutil.ReadFile(t, outputPath); !bytes.Equal(got, headerBlob()) {
				t.Errorf("binary = %v, want %v", got, headerBlob())
			}
		})
	}
}

func TestConvertFailures(t *testing.T) {
	directory := t.TempDir()
	binaryPath := testutil.WriteFile(t, directory, "header.bin", headerBlob())
	truncatedPath := testutil.WriteFile(t, directory, "truncated.bin", headerBlob()[:6])
	mismatchPath := testutil.WriteFile(t, directory, "mismatch.json", []byte(`{"seq": "42", "stamp": {"secs": 0, "nsecs": 0}, "frame_id": ""}`))
	rangePath := testutil.WriteFile(t, directory, "range.json", []byte(`{"seq": -1, "stamp": {"secs": 0, "nsecs": 0}, "frame_id": ""}`))
	rawPath := testutil.WriteFile(t, directory, "raw.bin", append(headerBlob()[:12], 1, 0, 0, 0, 0xff))
	documentPath := filepath.Join(directory, "out.json")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{
			name: "argument count",
			args: []string{"std_msgs", "Header", binaryPath, "-b"},
			code: cli.ExitUsage,
			want: "expected 4 arguments",
		},
		{
			name: "unknown type",
			args: []string{"std_msgs", "Headr", binaryPath, documentPath, "-b"},
			code: cli.ExitUnknownType,
			want: `unknown type "Headr"`,
		},
		{
			name: "unknown format",
			args: []string{"std_msgs", "Header", binaryPath, documentPath, "-b", "--format", "xml"},
			code: cli.ExitUsage,
			want: "unknown document format",
		},
		{
			name: "negative indent",
			args: []string{"std_msgs", "Header", binaryPath, documentPath, "-b", "--indent", "-1"},
			code: cli.ExitUsage,
			want: "--indent must not be negative",
		},
		{
			name: "missing input",
			args: []string{"std_msgs", "Header", filepath.Join(directory, "missing.bin"), documentPath, "-b"},
			code: cli.ExitIO,
			want: "missing.bin",
		},
		{
			name: "truncated binary",
			args: []string{"std_msgs", "Header", truncatedPath, documentPath, "-b"},
			code: cli.ExitMalformedInput,
			want: "truncated.bin",
		},
		{
			name: "string not valid UTF-8",
			args: []string{"std_msgs", "Header", rawPath, documentPath, "-b"},
			code: cli.ExitMalformedInput,
			want: "frame_id: string is not valid UTF-8",
		},
		{
			name: "schema mismatch",
			args: []string{"std_msgs", "Header", filepath.Join(directory, "x.bin"), mismatchPath, "-j"},
			code: cli.ExitSchemaMismatch,
			want: "seq",
		},
		{
			name: "out of range",
			args: []string{"std_msgs", "Header", filepath.Join(directory, "x.bin"), rangePath, "-j"},
			code: cli.ExitValueOutOfRange,
			want: "seq",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, code := execute(t, config.Default(), Command, test.args...)
			if code != test.code {
				t.Errorf("exit code = %d, want %d (stdout %q)", code, test.code, stdout)
			}
			if !strings.HasPrefix(stdout, "Failure: ") || !strings.Contains(stdout, test.want) {
				t.Errorf("stdout = %q, want a failure line containing %q", stdout, test.want)
			}
			if strings.Count(stdout, "\n") != 1 {
				t.Errorf("stdout = %q, want exactly one line", stdout)
			}
		})
	}

	for _, name := range testutil.DirNames(t, directory) {
		if name == "out.json" || name == "x.bin" {
			t.Errorf("failed conversion created %s", name)
		}
	}
}

func TestConvertFormats(t *testing.T) {
	directory := t.TempDir()
	binaryPath := testutil.WriteFile(t, directory, "header.bin", headerBlob())

	yamlPath := filepath.Join(directory, "header.yaml")
	if _, code := execute(t, config.Default(), Command, "std_msgs", "Header", binaryPath, yamlPath, "-b"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	want := "seq: 42\nstamp:\n  secs: 1\n  nsecs: 2\nframe_id: map\n"
	if diff := cmp.Diff(want, string(testutil.ReadFile(t, yamlPath))); diff != "" {
		t.Errorf("YAML mismatch (-want +got):\n%s", diff)
	}

	// --format wins over the extension.
	cborPath := filepath.Join(directory, "header.dat")
	if _, code := execute(t, config.Default(), Command, "std_msgs", "Header", binaryPath, cborPath, "-b", "--format", "cbor"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	outputPath := filepath.Join(directory, "out.bin")
	if _, code := execute(t, config.Default(), Command, "std_msgs", "Header", outputPath, cborPath, "-j", "--format=cbor"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := testutil.ReadFile(t, outputPath); !bytes.Equal(got, headerBlob()) {
		t.Errorf("binary after CBOR round trip = %v", got)
	}
}

func TestConvertIndent(t *testing.T) {
	directory := t.TempDir()
	binaryPath := testutil.WriteFile(t, directory, "header.bin", headerBlob())
	documentPath := filepath.Join(directory, "header.json")

	if _, code := execute(t, config.Default(), Command, "std_msgs", "Header", binaryPath, documentPath, "-b", "--indent", "0"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got, want := string(testutil.ReadFile(t, documentPath)), `{"seq":42,"stamp":{"secs":1,"nsecs":2},"frame_id":"map"}`; got != want {
		t.Errorf("compact document = %s, want %s", got, want)
	}

	// The configured indent is the flag's default.
	cfg := config.Default()
	cfg.Output.Indent = 4
	if _, code := execute(t, cfg, Command, "std_msgs", "Header", binaryPath, documentPath, "-b"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := string(testutil.ReadFile(t, documentPath)); !strings.HasPrefix(got, "{\n    \"seq\": 42") {
		t.Errorf("indent 4 document = %s", got)
	}
}

func TestDocumentFormat(t *testing.T) {
	tests := []struct {
		flag, path, configured string
		want                   codec.Format
	}{
		{"", "header.json", "", codec.FormatJSON},
		{"", "header.yml", "cbor", codec.FormatYAML},
		{"", "header.CBOR", "", codec.FormatCBOR},
		{"", "header.txt", "yaml", codec.FormatYAML},
		{"", "header", "", codec.FormatJSON},
		{"cbor", "header.json", "yaml", codec.FormatCBOR},
	}
	for _, test := range tests {
		got, err := documentFormat(test.flag, test.path, test.configured)
		if err != nil || got != test.want {
			t.Errorf("documentFormat(%q, %q, %q) = %q, %v; want %q",
				test.flag, test.path, test.configured, got, err, test.want)
		}
	}
}
