// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by --color and output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorProfile returns the color profile to use for output written to
// w. "never" disables color. "auto" enables it only when w is a
// terminal, honoring NO_COLOR and CLICOLOR_FORCE. "always" enables it
// unconditionally, at 256 colors when the environment gives no better
// answer.
func ColorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			return termenv.ANSI256
		}
		return profile
	default:
		file, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(file.Fd())) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}
