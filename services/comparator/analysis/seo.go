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
	"sort"
	"strings"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// SEOOptions tunes the keyword density analyzer.
type SEOOptions struct {
	// IdealDensity is the per-keyword density the proximity component
	// rewards. 0.015 (1.5%) is the commonly cited sweet spot.
	IdealDensity float64

	// MaxAutoKeywords caps how many frequent terms are auto-extracted
	// when the caller supplies no keyword list.
	MaxAutoKeywords int
}

// DefaultSEOOptions returns the documented defaults.
func DefaultSEOOptions() SEOOptions {
	return SEOOptions{IdealDensity: 0.015, MaxAutoKeywords: 5}
}

// AnalyzeSEO computes keyword coverage and density proximity for the
// normalized text.
//
// # Description
//
// When keywords is empty the top MaxAutoKeywords non-stopword terms by
// frequency are extracted from the text itself. For each keyword the
// analyzer counts whole-token occurrences and the density count/total.
// The score blends two components:
//
//	score = 0.6*coverage + 0.4*densityProximity
//
// where coverage is the fraction of keywords present at least once and
// densityProximity linearly penalizes deviation from IdealDensity,
// clamped to [0,1] per keyword and averaged.
//
// # Details keys
//
//   - "keywords": []datatypes.KeywordStat
//   - "coverage": float64
//   - "autoExtracted": bool
//   - "totalWords": int
func AnalyzeSEO(text string, keywords []string, opts SEOOptions) datatypes.AnalyzerResult {
	tokens := make([]string, 0)
	for _, w := range Words(text) {
		if t := FoldWord(w); t != "" {
			tokens = append(tokens, t)
		}
	}
	totalWords := len(tokens)

	auto := false
	if len(keywords) == 0 {
		keywords = topTerms(tokens, opts.MaxAutoKeywords)
		auto = true
	}

	freq := make(map[string]int, totalWords)
	for _, t := range tokens {
		freq[t]++
	}

	stats := make([]datatypes.KeywordStat, 0, len(keywords))
	present := 0
	proximitySum := 0.0
	for _, kw := range keywords {
		folded := FoldWord(strings.TrimSpace(kw))
		count := freq[folded]
		density := 0.0
		if totalWords > 0 {
			density = float64(count) / float64(totalWords)
		}
		if count > 0 {
			present++
		}
		proximitySum += densityProximity(density, opts.IdealDensity)
		stats = append(stats, datatypes.KeywordStat{
			Keyword: kw,
			Count:   count,
			Density: density,
		})
	}

	coverage := 0.0
	proximity := 0.0
	if len(keywords) > 0 {
		coverage = float64(present) / float64(len(keywords))
		proximity = proximitySum / float64(len(keywords))
	}

	score := int(math.Round(100 * (0.6*coverage + 0.4*proximity)))

	return datatypes.AnalyzerResult{
		Score: score,
		Details: map[string]any{
			"keywords":      stats,
			"coverage":      coverage,
			"autoExtracted": auto,
			"totalWords":    totalWords,
		},
	}
}

// densityProximity rewards densities near ideal with a linear penalty
// for deviation, clamped to [0,1]. A density of exactly ideal scores
// 1.0; zero or 2x ideal scores 0.0.
func densityProximity(density, ideal float64) float64 {
	if ideal <= 0 {
		return 0
	}
	return clamp01(1 - math.Abs(density-ideal)/ideal)
}

// topTerms returns the n most frequent non-stopword tokens, ties broken
// alphabetically for determinism.
func topTerms(tokens []string, n int) []string {
	freq := make(map[string]int)
	for _, t := range tokens {
		if len(t) < 3 || IsStopWord(t) {
			continue
		}
		freq[t]++
	}

	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
