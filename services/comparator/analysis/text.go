// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis implements the content comparison and scoring core:
// text normalization, the character diff engine, the Content Quality
// Index scorer, and the auxiliary heuristic analyzers (SEO, engagement,
// duplication, broken links, intent relevance).
//
// Everything except the broken-link checker is pure CPU work over
// strings: no I/O, no shared state, safe for concurrent use.
package analysis

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// wordToken folds a tokenized word down to its comparable form:
	// anything that is not a letter, digit, or apostrophe is stripped.
	wordToken = regexp.MustCompile(`[^a-z0-9']+`)

	// urlPattern matches http(s) URLs embedded in free text. Trailing
	// sentence punctuation is trimmed separately in ExtractURLs.
	urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

	sentenceSplit = regexp.MustCompile(`[.!?]+`)
)

// Normalize canonicalizes raw text before any comparison or scoring.
//
// # Description
//
// Applies, in order: non-breaking spaces (U+00A0) become regular spaces,
// curly apostrophes (U+2019) become straight apostrophes, every run of
// whitespace (spaces, tabs, newlines) collapses to a single space, and
// leading/trailing whitespace is trimmed.
//
// Normalize is idempotent and pure: Normalize(Normalize(s)) == Normalize(s)
// for every input. Casing is untouched; analyzers lowercase downstream
// where they need to.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, " ", " ")
	s = strings.ReplaceAll(s, "’", "'")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Words splits text into whitespace-delimited words. The words keep
// their punctuation; use FoldWord to reduce them to comparable tokens.
func Words(text string) []string {
	return strings.Fields(text)
}

// FoldWord lowercases a word and strips everything that is not a letter,
// digit, or apostrophe. Returns "" when nothing survives.
func FoldWord(word string) string {
	return wordToken.ReplaceAllString(strings.ToLower(word), "")
}

// Tokens returns the folded, non-empty tokens of text that are longer
// than minLen runes. Used by the intent relevance and drift analyzers.
func Tokens(text string, minLen int) []string {
	var out []string
	for _, w := range Words(text) {
		t := FoldWord(w)
		if len([]rune(t)) > minLen {
			out = append(out, t)
		}
	}
	return out
}

// SplitSentences splits text on '.', '!', and '?', dropping empty
// fragments. A text with no terminator at all yields one sentence.
func SplitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExtractURLs returns the unique http(s) URLs found in text, in order of
// first appearance, with trailing sentence punctuation trimmed.
func ExtractURLs(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, raw := range urlPattern.FindAllString(text, -1) {
		u := strings.TrimRight(raw, ".,;:!?)")
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// termFrequency builds a token frequency vector for text using Tokens
// with the given minimum length.
func termFrequency(text string, minLen int) map[string]int {
	freq := make(map[string]int)
	for _, t := range Tokens(text, minLen) {
		freq[t]++
	}
	return freq
}
