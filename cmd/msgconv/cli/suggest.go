// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean". Three edits covers a transposition plus a dropped or
// doubled letter.
const maxSuggestDistance = 3

// suggestCommand returns the subcommand name nearest to unknown, or "".
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for index, command := range commands {
		names[index] = command.Name
	}
	return nearest(unknown, names)
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the nearest defined long flag as "--name", or "" when the
// first unknown flag has no close match. Parsing stops at "--".
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	name, found := firstUnknownFlag(args, flagSet)
	if !found {
		return ""
	}

	var defined []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		defined = append(defined, flag.Name)
	})
	if match := nearest(name, defined); match != "" {
		return "--" + match
	}
	return ""
}

// firstUnknownFlag returns the bare name of the first argument that
// looks like a flag but is neither a defined long name nor a defined
// single-letter shorthand.
func firstUnknownFlag(args []string, flagSet *pflag.FlagSet) (string, bool) {
	for _, arg := range args {
		if arg == "--" {
			return "", false
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if flagSet.Lookup(name) != nil {
			continue
		}
		if len(name) == 1 && flagSet.ShorthandLookup(name) != nil {
			continue
		}
		return name, true
	}
	return "", false
}

// nearest returns the candidate with the smallest edit distance to
// input, as long as that distance is within maxSuggestDistance. Ties go
// to the earlier candidate.
func nearest(input string, candidates []string) string {
	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// levenshtein returns the number of single-byte insertions, deletions,
// and substitutions that turn a into b.
func levenshtein(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	// Two rows of the edit matrix, indexed by position in the shorter
	// string.
	above := make([]int, len(a)+1)
	row := make([]int, len(a)+1)
	for column := range above {
		above[column] = column
	}
	for line := 1; line <= len(b); line++ {
		row[0] = line
		for column := 1; column <= len(a); column++ {
			substitute := above[column-1]
			if a[column-1] != b[line-1] {
				substitute++
			}
			row[column] = min(above[column]+1, row[column-1]+1, substitute)
		}
		above, row = row, above
	}
	return above[len(a)]
}
