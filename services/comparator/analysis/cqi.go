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
	"fmt"
	"math"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// =============================================================================
// Options
// =============================================================================

// CQIOptions are the tunables of the Content Quality Index scorer.
//
// Use DefaultCQIOptions for the documented defaults. The three weights
// must sum to 1.0; Validate enforces this at configuration time so the
// scorer itself never has to check.
type CQIOptions struct {
	// SampleCap bounds how many leading words feed the intensive
	// sub-metrics (vocabulary, readability). Length always uses the
	// full word count.
	SampleCap int

	// LengthScale is the e-folding scale of the saturating length
	// score: lengthScore = 1 - exp(-totalWords/LengthScale).
	LengthScale float64

	// ReliableMinWords is the minimum word count below which results
	// are flagged statistically unreliable.
	ReliableMinWords int

	// VocabWeight, ReadWeight, LengthWeight combine the sub-metrics.
	VocabWeight  float64
	ReadWeight   float64
	LengthWeight float64

	// ShrinkagePrior and ShrinkageK control the Bayesian shrinkage of
	// the type-token ratio toward the prior for small samples.
	ShrinkagePrior float64
	ShrinkageK     float64

	// ReadabilityMidpoint is the average sentence length (in words)
	// that maps to a 0.50 readability score; ReadabilitySlope controls
	// how fast the logistic curve falls off around it.
	ReadabilityMidpoint float64
	ReadabilitySlope    float64
}

// DefaultCQIOptions returns the documented default tunables.
func DefaultCQIOptions() CQIOptions {
	return CQIOptions{
		SampleCap:           5000,
		LengthScale:         200,
		ReliableMinWords:    30,
		VocabWeight:         0.4,
		ReadWeight:          0.3,
		LengthWeight:        0.3,
		ShrinkagePrior:      0.5,
		ShrinkageK:          20,
		ReadabilityMidpoint: 18,
		ReadabilitySlope:    5,
	}
}

// Validate checks the options for internal consistency.
func (o CQIOptions) Validate() error {
	if o.SampleCap <= 0 {
		return fmt.Errorf("sample cap must be positive, got %d", o.SampleCap)
	}
	if o.LengthScale <= 0 {
		return fmt.Errorf("length scale must be positive, got %v", o.LengthScale)
	}
	sum := o.VocabWeight + o.ReadWeight + o.LengthWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("CQI weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// =============================================================================
// Section classification
// =============================================================================

// sectionBand maps a word-count range onto a section type with its
// target CQI and an explanatory note.
type sectionBand struct {
	maxWords int // exclusive upper bound; 0 means unbounded
	name     string
	target   int
	note     string
}

// Bands are ordered; the first band whose bound exceeds the word count
// wins. Targets rise with expected content depth.
var sectionBands = []sectionBand{
	{50, "Hero / Tagline", 55,
		"Very short copy; vocabulary and length metrics carry little weight here."},
	{100, "Service Card / Feature", 55,
		"Short feature copy; expected to be punchy rather than exhaustive."},
	{200, "Section Intro / About", 60,
		"Introductory copy; should balance brevity with substance."},
	{500, "Page Section / Landing Copy", 65,
		"Full page section; enough room for varied vocabulary and structure."},
	{1000, "Case Study / Blog Post", 70,
		"Long-form content; readers expect depth and readable pacing."},
	{0, "Technical Article / Whitepaper", 72,
		"Extended technical writing; held to the highest quality bar."},
}

// ClassifySection buckets a word count into its named section band.
func ClassifySection(totalWords int) (sectionType string, targetCQI int, note string) {
	for _, b := range sectionBands {
		if b.maxWords == 0 || totalWords < b.maxWords {
			return b.name, b.target, b.note
		}
	}
	last := sectionBands[len(sectionBands)-1]
	return last.name, last.target, last.note
}

// =============================================================================
// Scorer
// =============================================================================

// CalculateCQI computes the Content Quality Index for one normalized
// text.
//
// # Description
//
// The pipeline, per sub-metric:
//
//  1. Vocabulary: a type-token ratio with Bayesian shrinkage,
//     (unique + k*prior) / (sample + k). A raw ratio is unstable and
//     inflated for short samples (a 10-word sample trivially reaches
//     1.0); shrinkage pulls small samples toward the prior so the
//     metric only becomes meaningful once enough words accumulate.
//  2. Readability: a logistic curve over average sentence length.
//     Syllable-based formulas wrongly penalize domain-specific
//     multisyllabic vocabulary (technical and enterprise writing), so
//     sentence length serves as a controllable, domain-neutral proxy.
//     The neutral point (0.50) sits at the configured midpoint; shorter
//     sentences score higher.
//  3. Length: a saturating curve, 1 - exp(-totalWords/scale), giving
//     diminishing returns for very long content.
//
// Texts longer than the sample cap feed only their leading words into
// the vocabulary and readability metrics; length always uses the full
// count. The weighted combination is clamped to [0,1] and rounded to an
// integer 0..100, then compared against the section-type target to
// derive a status and summary.
//
// # Failure Semantics
//
// Fails soft: always returns a result. Empty input yields score 0 with
// summary "No pasted content".
func CalculateCQI(text string, opts CQIOptions) datatypes.CQIResult {
	words := Words(text)
	totalWords := len(words)

	if totalWords == 0 {
		sectionType, target, note := ClassifySection(0)
		return datatypes.CQIResult{
			Score:       0,
			Summary:     "No pasted content",
			Status:      datatypes.CQIPoor,
			Reliable:    false,
			SectionType: sectionType,
			TargetCQI:   target,
			SectionNote: note,
			Details: datatypes.CQIDetails{
				Weights: weightsOf(opts),
			},
		}
	}

	// Sample the leading words for the intensive sub-metrics.
	sample := words
	sampled := false
	if totalWords > opts.SampleCap {
		sample = words[:opts.SampleCap]
		sampled = true
	}
	sampleSize := len(sample)

	// Vocabulary: shrunk type-token ratio over folded tokens.
	unique := make(map[string]struct{}, sampleSize)
	for _, w := range sample {
		if t := FoldWord(w); t != "" {
			unique[t] = struct{}{}
		}
	}
	uniqueSample := len(unique)
	vocabRatio := (float64(uniqueSample) + opts.ShrinkageK*opts.ShrinkagePrior) /
		(float64(sampleSize) + opts.ShrinkageK)

	// Readability: logistic over average sentence length.
	sentences := SplitSentences(joinWords(sample))
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	avgSentenceWords := float64(sampleSize) / float64(sentenceCount)
	readability := 1.0 / (1.0 + math.Exp((avgSentenceWords-opts.ReadabilityMidpoint)/opts.ReadabilitySlope))

	// Length: saturating curve over the full word count.
	lengthScore := 1.0 - math.Exp(-float64(totalWords)/opts.LengthScale)

	combined := clamp01(vocabRatio*opts.VocabWeight +
		readability*opts.ReadWeight +
		lengthScore*opts.LengthWeight)
	score := int(math.Round(combined * 100))

	sectionType, target, note := ClassifySection(totalWords)
	status, summary := deriveStatus(score, target, sectionType)

	return datatypes.CQIResult{
		Score:       score,
		Summary:     summary,
		Status:      status,
		Reliable:    totalWords >= opts.ReliableMinWords,
		SectionType: sectionType,
		TargetCQI:   target,
		SectionNote: note,
		Details: datatypes.CQIDetails{
			TotalWords:       totalWords,
			SampleSize:       sampleSize,
			Sampled:          sampled,
			UniqueSample:     uniqueSample,
			AvgSentenceWords: avgSentenceWords,
			SentenceCount:    sentenceCount,
			VocabRatio:       vocabRatio,
			ReadabilityScore: readability,
			LengthScore:      lengthScore,
			Weights:          weightsOf(opts),
		},
	}
}

// deriveStatus maps the score/target gap onto a status band with a
// templated human-readable summary.
func deriveStatus(score, target int, sectionType string) (datatypes.CQIStatus, string) {
	gap := target - score
	switch {
	case score >= target+20:
		return datatypes.CQIExceeds, fmt.Sprintf(
			"Excellent %s content: score %d comfortably exceeds the target of %d.",
			sectionType, score, target)
	case score >= target:
		return datatypes.CQIMeets, fmt.Sprintf(
			"%s content meets its quality target: score %d against a target of %d.",
			sectionType, score, target)
	case gap <= 10:
		return datatypes.CQINear, fmt.Sprintf(
			"%s content is close to target: score %d against a target of %d.",
			sectionType, score, target)
	case gap <= 25:
		return datatypes.CQINeedsImprovement, fmt.Sprintf(
			"%s content needs improvement: score %d falls short of the %d target.",
			sectionType, score, target)
	default:
		return datatypes.CQIPoor, fmt.Sprintf(
			"%s content scores poorly: %d is well below the %d target.",
			sectionType, score, target)
	}
}

func weightsOf(opts CQIOptions) datatypes.CQIWeights {
	return datatypes.CQIWeights{
		VocabWeight:  opts.VocabWeight,
		ReadWeight:   opts.ReadWeight,
		LengthWeight: opts.LengthWeight,
	}
}

func joinWords(words []string) string {
	n := 0
	for _, w := range words {
		n += len(w) + 1
	}
	buf := make([]byte, 0, n)
	for i, w := range words {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, w...)
	}
	return string(buf)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
