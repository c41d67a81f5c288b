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

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// Intent relevance tier thresholds on the 0..100 score.
const (
	intentHighThreshold     = 70
	intentModerateThreshold = 40
)

// AnalyzeIntentRelevance measures how topically aligned the expected and
// actual texts are via cosine similarity of their term-frequency
// vectors.
//
// # Description
//
// Tokens are lowercased, punctuation-stripped, and must be longer than
// two characters. The score is similarity x 100, tiered as High (>=70),
// Moderate (>=40), or Low. Two empty vectors yield similarity 0.
//
// # Details keys
//
//   - "similarity": float64 in [0,1]
//   - "tier": "High" | "Moderate" | "Low"
//   - "expectedTerms", "actualTerms", "sharedTerms": int
func AnalyzeIntentRelevance(expected, actual string) datatypes.AnalyzerResult {
	expectedFreq := termFrequency(expected, 2)
	actualFreq := termFrequency(actual, 2)

	similarity := cosineSimilarity(expectedFreq, actualFreq)
	score := int(math.Round(similarity * 100))

	shared := 0
	for term := range expectedFreq {
		if _, ok := actualFreq[term]; ok {
			shared++
		}
	}

	tier := "Low"
	switch {
	case score >= intentHighThreshold:
		tier = "High"
	case score >= intentModerateThreshold:
		tier = "Moderate"
	}

	return datatypes.AnalyzerResult{
		Score: score,
		Details: map[string]any{
			"similarity":    similarity,
			"tier":          tier,
			"expectedTerms": len(expectedFreq),
			"actualTerms":   len(actualFreq),
			"sharedTerms":   shared,
		},
	}
}

// cosineSimilarity computes the cosine of the angle between two sparse
// term-frequency vectors. Returns 0 when either vector is empty.
func cosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	dot := 0.0
	normA := 0.0
	normB := 0.0

	for term, ca := range a {
		normA += float64(ca) * float64(ca)
		if cb, ok := b[term]; ok {
			dot += float64(ca) * float64(cb)
		}
	}
	for _, cb := range b {
		normB += float64(cb) * float64(cb)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
