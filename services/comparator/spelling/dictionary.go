// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spelling provides the pluggable spell-check capability used by
// the comparator: dictionary sources, a per-language singleflight cache,
// and the spelling analyzer itself.
//
// A Dictionary answers two questions: is this word correct, and what
// might the writer have meant. Dictionaries are loaded lazily per
// language and cached for the process lifetime; a language whose
// dictionary cannot be loaded degrades to an explicit "unavailable"
// analyzer result, never an error.
package spelling

import (
	"bufio"
	"sort"
	"strings"
)

// Dictionary is the spell-check capability consumed by the analyzer.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use; dictionaries are
// shared across requests once loaded.
type Dictionary interface {
	// Language returns the language tag this dictionary was loaded for.
	Language() string

	// Correct reports whether the word is spelled correctly. Matching
	// is case-insensitive.
	Correct(word string) bool

	// Suggest returns up to max likely corrections for a misspelled
	// word, best first.
	Suggest(word string, max int) []string
}

// wordSet is a Dictionary backed by a plain lowercase word set.
// Suggestions come from single-edit variants present in the set.
type wordSet struct {
	lang  string
	words map[string]struct{}
}

// NewWordSet builds a Dictionary from newline-delimited word list text.
// Blank lines and lines starting with '#' are ignored. Hunspell-style
// affix flags after '/' are stripped.
func NewWordSet(lang, wordList string) Dictionary {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(wordList))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexByte(line, '/'); i >= 0 {
			line = line[:i]
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	return &wordSet{lang: lang, words: words}
}

func (d *wordSet) Language() string { return d.lang }

func (d *wordSet) Correct(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Suggest generates every single-edit variant of the word (deletion,
// transposition, replacement, insertion) and keeps those present in the
// dictionary, shortest edit distance first, alphabetical within a tier.
func (d *wordSet) Suggest(word string, max int) []string {
	if max <= 0 {
		return nil
	}
	lower := strings.ToLower(word)

	seen := make(map[string]struct{})
	var hits []string
	for _, candidate := range edits1(lower) {
		if candidate == lower {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		if _, ok := d.words[candidate]; ok {
			seen[candidate] = struct{}{}
			hits = append(hits, candidate)
		}
	}

	sort.Strings(hits)
	if len(hits) > max {
		hits = hits[:max]
	}
	return hits
}

// letters used for replacement and insertion edits. ASCII plus the
// common accented Latin letters the analyzer's tokenizer accepts.
const editLetters = "abcdefghijklmnopqrstuvwxyz'àáâäãåçèéêëìíîïñòóôöõùúûüý"

// edits1 returns all strings one edit away from word.
func edits1(word string) []string {
	runes := []rune(word)
	alphabet := []rune(editLetters)
	var out []string

	// Deletions.
	for i := range runes {
		out = append(out, string(runes[:i])+string(runes[i+1:]))
	}
	// Transpositions.
	for i := 0; i < len(runes)-1; i++ {
		swapped := make([]rune, len(runes))
		copy(swapped, runes)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		out = append(out, string(swapped))
	}
	// Replacements.
	for i := range runes {
		for _, c := range alphabet {
			if runes[i] == c {
				continue
			}
			out = append(out, string(runes[:i])+string(c)+string(runes[i+1:]))
		}
	}
	// Insertions.
	for i := 0; i <= len(runes); i++ {
		for _, c := range alphabet {
			out = append(out, string(runes[:i])+string(c)+string(runes[i:]))
		}
	}
	return out
}
