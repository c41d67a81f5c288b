// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package drift

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/AleutianAI/ContentCompare/services/comparator/analysis"
	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// Blend weights for the lexical similarity measure. Set overlap
// (Jaccard) catches concept gain/loss; the cosine term weighs how
// heavily shared concepts are used.
const (
	lexicalJaccardWeight = 0.4
	lexicalCosineWeight  = 0.6
)

// LexicalProvider scores drift from concept overlap alone. It needs no
// API key or network and sits last in the chain as the always-on
// fallback.
type LexicalProvider struct{}

// NewLexicalProvider returns the built-in lexical drift scorer.
func NewLexicalProvider() *LexicalProvider {
	return &LexicalProvider{}
}

func (p *LexicalProvider) Name() string { return "lexical" }

// ScoreSemanticDrift compares stemmed concept vectors of the two texts.
//
// # Description
//
// Both texts are tokenized, stopword-filtered, and stemmed into
// concept frequency vectors. Similarity blends Jaccard set overlap
// with cosine similarity; drift is (1 - similarity) scaled to 0..100.
// The summary names the top concepts that were removed or added.
func (p *LexicalProvider) ScoreSemanticDrift(_ context.Context, expected, actual string) (*datatypes.DriftResult, error) {
	expConcepts := conceptVector(expected)
	actConcepts := conceptVector(actual)

	if len(expConcepts) == 0 && len(actConcepts) == 0 {
		return &datatypes.DriftResult{Score: 0, Summary: "Both texts are empty."}, nil
	}
	if len(expConcepts) == 0 || len(actConcepts) == 0 {
		return &datatypes.DriftResult{Score: 100, Summary: "One of the texts has no comparable content."}, nil
	}

	similarity := lexicalJaccardWeight*jaccard(expConcepts, actConcepts) +
		lexicalCosineWeight*cosine(expConcepts, actConcepts)
	score := clampScore(int(math.Round((1 - similarity) * 100)))

	return &datatypes.DriftResult{
		Score:   score,
		Summary: lexicalSummary(score, expConcepts, actConcepts),
	}, nil
}

// conceptVector builds a stem frequency map from stopword-filtered
// tokens longer than two characters.
func conceptVector(text string) map[string]int {
	vec := make(map[string]int)
	for _, tok := range analysis.Tokens(text, 2) {
		if analysis.IsStopWord(tok) {
			continue
		}
		vec[stemWord(tok)]++
	}
	return vec
}

func jaccard(a, b map[string]int) float64 {
	shared := 0
	for k := range a {
		if _, ok := b[k]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func cosine(a, b map[string]int) float64 {
	var dot, normA, normB float64
	for k, av := range a {
		normA += float64(av) * float64(av)
		if bv, ok := b[k]; ok {
			dot += float64(av) * float64(bv)
		}
	}
	for _, bv := range b {
		normB += float64(bv) * float64(bv)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func lexicalSummary(score int, expected, actual map[string]int) string {
	var base string
	switch {
	case score < 10:
		base = "The texts are highly similar in meaning."
	case score < 30:
		base = "Minor drift: most concepts are preserved."
	case score < 60:
		base = "Moderate drift: several concepts changed between the texts."
	default:
		base = "Significant drift: the texts differ substantially in meaning."
	}

	removed := topMissing(expected, actual)
	added := topMissing(actual, expected)

	var sb strings.Builder
	sb.WriteString(base)
	if len(removed) > 0 {
		sb.WriteString(fmt.Sprintf(" Removed concepts: %s.", strings.Join(removed, ", ")))
	}
	if len(added) > 0 {
		sb.WriteString(fmt.Sprintf(" Added concepts: %s.", strings.Join(added, ", ")))
	}
	return sb.String()
}

// topMissing lists up to three concepts present in from but absent
// from other, most frequent first.
func topMissing(from, other map[string]int) []string {
	type concept struct {
		stem  string
		count int
	}
	var missing []concept
	for k, v := range from {
		if _, ok := other[k]; !ok {
			missing = append(missing, concept{k, v})
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].count != missing[j].count {
			return missing[i].count > missing[j].count
		}
		return missing[i].stem < missing[j].stem
	})
	if len(missing) > 3 {
		missing = missing[:3]
	}
	out := make([]string, len(missing))
	for i, c := range missing {
		out[i] = c.stem
	}
	return out
}
