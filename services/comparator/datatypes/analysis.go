// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the request, response, and result structures
// shared between the comparator's handlers, services, and analyzers.
//
// All types in this package are request-scoped: they are created when a
// comparison or CQI request arrives and discarded once the HTTP response
// has been serialized. Nothing here carries identity across requests.
package datatypes

// =============================================================================
// Diff
// =============================================================================

// DiffStatus classifies the outcome of a character-level comparison.
type DiffStatus string

const (
	// DiffPass means expected and actual text are identical after
	// normalization: no added or removed spans were produced.
	DiffPass DiffStatus = "PASS"

	// DiffFail means at least one added or removed span is non-empty.
	DiffFail DiffStatus = "FAIL"
)

// DiffResult holds the two parallel marked-up strings produced by the
// character diff engine.
//
// # Description
//
// ExpectedMarkup contains the expected text with removed characters wrapped
// in `<span class="removed">` markers. ActualMarkup contains the actual
// text with added characters wrapped in `<span class="added">` markers.
// Unchanged characters appear literally in both. Stripping the span tags
// (and HTML-unescaping) from either string reconstructs the corresponding
// input exactly.
//
// # Fields
//
//   - ExpectedMarkup: expected text with removed spans
//   - ActualMarkup: actual text with added spans
//   - Status: DiffPass when no spans were emitted, DiffFail otherwise
type DiffResult struct {
	ExpectedMarkup string     `json:"expectedHtml"`
	ActualMarkup   string     `json:"actualHtml"`
	Status         DiffStatus `json:"status"`
}

// =============================================================================
// Content Quality Index
// =============================================================================

// CQIStatus describes how a CQI score relates to its section target.
type CQIStatus string

const (
	CQIExceeds          CQIStatus = "exceeds"
	CQIMeets            CQIStatus = "meets"
	CQINear             CQIStatus = "near"
	CQINeedsImprovement CQIStatus = "needs_improvement"
	CQIPoor             CQIStatus = "poor"
)

// CQIWeights records the fixed sub-metric weights used for a score.
type CQIWeights struct {
	VocabWeight  float64 `json:"vocabWeight"`
	ReadWeight   float64 `json:"readWeight"`
	LengthWeight float64 `json:"lengthWeight"`
}

// CQIDetails exposes the intermediate values behind a CQI score so the
// caller can see exactly how the composite was produced.
type CQIDetails struct {
	TotalWords       int        `json:"totalWords"`
	SampleSize       int        `json:"sampleSize"`
	Sampled          bool       `json:"sampled"`
	UniqueSample     int        `json:"uniqueSample"`
	AvgSentenceWords float64    `json:"avgSentenceWords"`
	SentenceCount    int        `json:"sentenceCount"`
	VocabRatio       float64    `json:"vocabRatio"`
	ReadabilityScore float64    `json:"readabilityScore"`
	LengthScore      float64    `json:"lengthScore"`
	Weights          CQIWeights `json:"weights"`
}

// CQIResult is the full Content Quality Index report for one text.
//
// # Fields
//
//   - Score: composite 0..100 quality score
//   - Summary: human-readable one-line verdict
//   - Status: score vs. section target classification
//   - Reliable: false when the text is too short for stable metrics
//   - SectionType: word-count band the text was classified into
//   - TargetCQI: the target score for that section type
//   - SectionNote: explanation of why that target applies
//   - Details: all intermediate metric values
type CQIResult struct {
	Score       int        `json:"score"`
	Summary     string     `json:"summary"`
	Status      CQIStatus  `json:"status"`
	Reliable    bool       `json:"reliable"`
	SectionType string     `json:"sectionType"`
	TargetCQI   int        `json:"targetCQI"`
	SectionNote string     `json:"sectionNote"`
	Details     CQIDetails `json:"details"`
}

// =============================================================================
// Auxiliary Analyzers
// =============================================================================

// AnalyzerResult is the shared shape returned by the auxiliary analyzers
// (SEO, engagement, duplication, broken links, intent relevance).
//
// Score is always 0..100. Details carries analyzer-specific values; keys
// are stable per analyzer and documented on the producing function.
type AnalyzerResult struct {
	Score   int            `json:"score"`
	Details map[string]any `json:"details"`
}

// KeywordStat reports per-keyword SEO metrics.
type KeywordStat struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// LinkCheck reports the outcome of probing a single URL.
type LinkCheck struct {
	URL    string `json:"url"`
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// =============================================================================
// Spelling
// =============================================================================

// MisspelledWord is one flagged word with its occurrence count and up to
// three dictionary suggestions.
type MisspelledWord struct {
	Word        string   `json:"word"`
	Count       int      `json:"count"`
	Suggestions []string `json:"suggestions"`
}

// SpellingResult is the spelling analyzer's report.
//
// When no dictionary could be loaded for the requested language the
// analyzer returns Available=false with a zero score; this is a normal
// degraded state, never an error.
type SpellingResult struct {
	Available    bool             `json:"available"`
	Language     string           `json:"language"`
	Score        int              `json:"score"`
	SampledWords int              `json:"sampledWords"`
	Misspelled   []MisspelledWord `json:"misspelled,omitempty"`
	Note         string           `json:"note,omitempty"`
}

// =============================================================================
// Semantic Drift
// =============================================================================

// DriftResult is the advisory output of the semantic drift provider chain.
//
// Available=false means no configured provider could produce a score,
// which is a normal state when no providers are configured.
type DriftResult struct {
	Available bool   `json:"available"`
	Provider  string `json:"provider,omitempty"`
	Score     int    `json:"score"`
	Summary   string `json:"summary,omitempty"`
}
