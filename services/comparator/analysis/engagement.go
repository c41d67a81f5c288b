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

// Engagement sub-score weights. Not configurable; CTA presence carries
// the largest weight.
const (
	engagementHeadingWeight  = 0.20
	engagementListWeight     = 0.15
	engagementCTAWeight      = 0.30
	engagementLinkWeight     = 0.15
	engagementSentenceWeight = 0.20
)

// ctaKeywords are call-to-action phrases matched case-insensitively.
var ctaKeywords = []string{
	"buy now", "get started", "learn more", "sign up", "subscribe",
	"contact us", "try free", "try it", "download", "register",
	"book a demo", "request a demo", "join", "start now", "shop now",
}

// AnalyzeEngagement scores structural engagement signals in the pasted
// content.
//
// # Description
//
// Operates on the raw (pre-normalization) text because three of the five
// signals depend on line structure, which whitespace collapsing erases:
//
//   - heading-like lines: short lines without terminal punctuation
//   - list-item lines: lines starting with a bullet or ordinal marker
//   - call-to-action keyword occurrences
//   - URL presence
//   - a penalty for excessive sentence count
//
// The five sub-scores combine with weights 0.2/0.15/0.3/0.15/0.2.
//
// # Details keys
//
//   - "headings", "listItems", "ctaCount", "urlCount", "sentenceCount": int
//   - "subScores": map[string]float64
func AnalyzeEngagement(rawText string) datatypes.AnalyzerResult {
	lines := strings.Split(rawText, "\n")

	headings := 0
	listItems := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case isListItemLine(trimmed):
			listItems++
		case isHeadingLine(trimmed):
			headings++
		}
	}

	lower := strings.ToLower(rawText)
	ctaCount := 0
	for _, kw := range ctaKeywords {
		ctaCount += strings.Count(lower, kw)
	}

	urlCount := len(ExtractURLs(rawText))
	sentenceCount := len(SplitSentences(Normalize(rawText)))

	headingScore := math.Min(1, float64(headings)/3)
	listScore := math.Min(1, float64(listItems)/5)
	ctaScore := math.Min(1, float64(ctaCount)/2)
	linkScore := 0.0
	if urlCount > 0 {
		linkScore = 1.0
	}
	sentenceScore := sentencePenalty(sentenceCount)

	combined := headingScore*engagementHeadingWeight +
		listScore*engagementListWeight +
		ctaScore*engagementCTAWeight +
		linkScore*engagementLinkWeight +
		sentenceScore*engagementSentenceWeight

	return datatypes.AnalyzerResult{
		Score: int(math.Round(100 * clamp01(combined))),
		Details: map[string]any{
			"headings":      headings,
			"listItems":     listItems,
			"ctaCount":      ctaCount,
			"urlCount":      urlCount,
			"sentenceCount": sentenceCount,
			"subScores": map[string]float64{
				"heading":  headingScore,
				"list":     listScore,
				"cta":      ctaScore,
				"link":     linkScore,
				"sentence": sentenceScore,
			},
		},
	}
}

// isHeadingLine treats short lines without terminal punctuation, Markdown
// headings, and all-caps lines as heading-like.
func isHeadingLine(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 8 {
		return false
	}
	if strings.ContainsAny(string(line[len(line)-1]), ".!?,;:") {
		return false
	}
	return true
}

// isListItemLine matches bullet markers and ordinal prefixes like "1." or
// "2)".
func isListItemLine(line string) bool {
	for _, prefix := range []string{"-", "*", "•", "–"} {
		if strings.HasPrefix(line, prefix+" ") {
			return true
		}
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return false
	}
	return line[i] == '.' || line[i] == ')'
}

// sentencePenalty is 1.0 up to 40 sentences and decays linearly to 0 at
// 100; walls of text depress engagement.
func sentencePenalty(sentences int) float64 {
	if sentences <= 40 {
		return 1.0
	}
	return clamp01(1 - float64(sentences-40)/60)
}
