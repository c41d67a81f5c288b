// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// CompareRequest is the body of POST /compare.
//
// # Fields
//
//   - URL: page to fetch the live text from
//   - Locator: element locator, interpreted per Type
//   - Type: one of "css", "id", "xpath"
//   - PastedContent: the expected text supplied by the user
//   - Keywords: optional SEO keyword list; the top frequent terms are
//     auto-extracted when empty
//   - Lang: optional spelling dictionary language tag, defaults to "en"
type CompareRequest struct {
	URL           string   `json:"url" binding:"required"`
	Locator       string   `json:"locator" binding:"required"`
	Type          string   `json:"type" binding:"required,locatortype"`
	PastedContent string   `json:"pastedContent" binding:"required"`
	Keywords      []string `json:"keywords,omitempty"`
	Lang          string   `json:"lang,omitempty"`
}

// CompareResponse is the combined payload assembled by the comparison
// orchestrator for POST /compare.
type CompareResponse struct {
	ExpectedHTML    string          `json:"expectedHtml"`
	ActualHTML      string          `json:"actualHtml"`
	Status          DiffStatus      `json:"status"`
	CQI             *CQIResult      `json:"cqi"`
	Spelling        *SpellingResult `json:"spelling"`
	SEO             *AnalyzerResult `json:"seo"`
	Engagement      *AnalyzerResult `json:"engagement"`
	Duplication     *AnalyzerResult `json:"duplication"`
	BrokenLinks     *AnalyzerResult `json:"brokenLinks"`
	IntentRelevance *AnalyzerResult `json:"intentRelevance"`
	MeaningDrift    *DriftResult    `json:"meaningDrift,omitempty"`
}

// CQIRequest is the body of POST /cqi. An empty PastedContent is
// valid and scores zero; only an absent key is rejected, which the
// handler checks before binding.
type CQIRequest struct {
	PastedContent string `json:"pastedContent"`
	Lang          string `json:"lang,omitempty"`
}

// CQIResponse is the payload returned by POST /cqi.
type CQIResponse struct {
	CQI      *CQIResult      `json:"cqi"`
	Spelling *SpellingResult `json:"spelling"`
}

// ProvidersResponse reports which optional capabilities are configured.
// Returned by GET /providers. Never includes secrets.
type ProvidersResponse struct {
	DriftProviders []string `json:"driftProviders"`
	Dictionaries   []string `json:"dictionaries"`
}
