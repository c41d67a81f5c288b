// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"math"
	"strings"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// DuplicationOptions tunes the duplicate-content analyzer.
//
// The overlap component rewards *differentiation* from the live page.
// That interacts oddly with a workflow where the pasted text is supposed
// to match the page, so the weighting is an explicit tunable rather than
// a contract; set OverlapWeight to 0 to score internal repetition only.
type DuplicationOptions struct {
	InternalWeight float64
	OverlapWeight  float64
}

// DefaultDuplicationOptions returns the documented defaults (0.7/0.3).
func DefaultDuplicationOptions() DuplicationOptions {
	return DuplicationOptions{InternalWeight: 0.7, OverlapWeight: 0.3}
}

// AnalyzeDuplication scores repetition within the expected text and its
// sentence-level overlap with the fetched actual text.
//
// # Description
//
// Sentences are compared case-insensitively after trimming. The internal
// duplication ratio is 1 - unique/total; the overlap ratio is the
// fraction of expected sentences that also appear in the actual text.
// Low internal duplication and low overlap both raise the score,
// weighted per DuplicationOptions.
//
// # Details keys
//
//   - "sentences", "uniqueSentences": int
//   - "internalDupRatio", "overlapRatio": float64
func AnalyzeDuplication(expected, actual string, opts DuplicationOptions) datatypes.AnalyzerResult {
	sentences := SplitSentences(expected)
	total := len(sentences)

	unique := make(map[string]struct{}, total)
	for _, s := range sentences {
		unique[sentenceKey(s)] = struct{}{}
	}

	internalDup := 0.0
	if total > 0 {
		internalDup = 1 - float64(len(unique))/float64(total)
	}

	actualSet := make(map[string]struct{})
	for _, s := range SplitSentences(actual) {
		actualSet[sentenceKey(s)] = struct{}{}
	}

	overlapping := 0
	for key := range unique {
		if _, ok := actualSet[key]; ok {
			overlapping++
		}
	}
	overlap := 0.0
	if len(unique) > 0 {
		overlap = float64(overlapping) / float64(len(unique))
	}

	weightSum := opts.InternalWeight + opts.OverlapWeight
	score := 100.0
	if weightSum > 0 {
		score = 100 * ((1-internalDup)*opts.InternalWeight + (1-overlap)*opts.OverlapWeight) / weightSum
	}

	return datatypes.AnalyzerResult{
		Score: int(math.Round(score)),
		Details: map[string]any{
			"sentences":        total,
			"uniqueSentences":  len(unique),
			"internalDupRatio": internalDup,
			"overlapRatio":     overlap,
		},
	}
}

func sentenceKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
