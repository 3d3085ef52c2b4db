// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// maxSuggestions bounds the names listed in an unknown-type error.
const maxSuggestions = 3

// Match is one ranked result of a fuzzy query.
type Match struct {
	// Name is the matched type or package name.
	Name string

	// Score is the fzf match score. Higher is better.
	Score int

	// Positions are the rune offsets in Name that matched the query,
	// in ascending order.
	Positions []int
}

// Match ranks every registered type name against pattern using fzf's
// fuzzy matching (case-insensitive unless pattern contains an upper
// case letter). Names that do not match are omitted. An empty pattern
// matches every name, in sorted order.
func (r *Registry) Match(pattern string) []Match {
	return rank(r.Names(), pattern)
}

// MatchPackages ranks the registered package names against pattern
// the same way [Registry.Match] ranks type names.
func (r *Registry) MatchPackages(pattern string) []Match {
	return rank(r.Packages(), pattern)
}

// Suggest returns up to three registered type names closest to query.
func (r *Registry) Suggest(query string) []string {
	return suggest(r.Names(), query)
}

func suggest(candidates []string, query string) []string {
	matches := rank(candidates, query)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	names := make([]string, len(matches))
	for index, match := range matches {
		names[index] = match.Name
	}
	return names
}

func rank(candidates []string, pattern string) []Match {
	if pattern == "" {
		matches := make([]Match, len(candidates))
		for index, candidate := range candidates {
			matches[index] = Match{Name: candidate}
		}
		return matches
	}

	caseSensitive := strings.ToLower(pattern) != pattern
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	runes := []rune(pattern)
	slab := util.MakeSlab(100*1024, 2048)

	var matches []Match
	for _, candidate := range candidates {
		chars := util.ToChars([]byte(candidate))
		result, positions := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, runes, true, slab)
		if result.Start < 0 || result.Score <= 0 {
			continue
		}
		match := Match{Name: candidate, Score: result.Score}
		if positions != nil {
			match.Positions = append([]int(nil), (*positions)...)
			sort.Ints(match.Positions)
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if len(matches[i].Name) != len(matches[j].Name) {
			return len(matches[i].Name) < len(matches[j].Name)
		}
		return matches[i].Name < matches[j].Name
	})
	return matches
}
