// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spelling

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// candidateWord matches spell-checkable words: two or more letters,
// accented Latin letters and inner apostrophes included. Digits and
// mixed alphanumerics are skipped; they are rarely dictionary words.
var candidateWord = regexp.MustCompile(`[a-zA-ZàáâäãåçèéêëìíîïñòóôöõùúûüýÀÁÂÄÃÅÇÈÉÊËÌÍÎÏÑÒÓÔÖÕÙÚÛÜÝ]['a-zA-ZàáâäãåçèéêëìíîïñòóôöõùúûüýÀÁÂÄÃÅÇÈÉÊËÌÍÎÏÑÒÓÔÖÕÙÚÛÜÝ]+`)

// Analyzer limits.
const (
	maxReportedOffenders = 10
	maxSuggestions       = 3
)

// Analyze spell-checks text against the cached dictionary for lang.
//
// # Description
//
// Tokenizes the text into candidate words, frequency-counts them, flags
// every word the dictionary marks incorrect, and aggregates the top
// offenders by occurrence count with up to three suggestions each. The
// score is the fraction of correctly spelled word occurrences scaled to
// 0..100.
//
// # Failure Semantics
//
// Fails soft. When no dictionary can be loaded for lang (unsupported
// language, download failure) the result carries Available=false and a
// note; the error is never propagated.
func Analyze(ctx context.Context, text, lang string, cache *Cache) datatypes.SpellingResult {
	dict, err := cache.Get(ctx, lang)
	if err != nil {
		return datatypes.SpellingResult{
			Available: false,
			Language:  lang,
			Note:      "dictionary unavailable for language " + lang,
		}
	}

	words := candidateWord.FindAllString(text, -1)
	sampled := len(words)
	if sampled == 0 {
		return datatypes.SpellingResult{
			Available: true,
			Language:  lang,
			Score:     100,
		}
	}

	freq := make(map[string]int, sampled)
	for _, w := range words {
		freq[strings.ToLower(w)]++
	}

	misspelledOccurrences := 0
	var offenders []datatypes.MisspelledWord
	for word, count := range freq {
		if dict.Correct(word) {
			continue
		}
		misspelledOccurrences += count
		offenders = append(offenders, datatypes.MisspelledWord{
			Word:        word,
			Count:       count,
			Suggestions: dict.Suggest(word, maxSuggestions),
		})
	}

	sort.Slice(offenders, func(i, j int) bool {
		if offenders[i].Count != offenders[j].Count {
			return offenders[i].Count > offenders[j].Count
		}
		return offenders[i].Word < offenders[j].Word
	})
	if len(offenders) > maxReportedOffenders {
		offenders = offenders[:maxReportedOffenders]
	}

	score := int(math.Round(100 * (1 - float64(misspelledOccurrences)/float64(sampled))))

	return datatypes.SpellingResult{
		Available:    true,
		Language:     lang,
		Score:        score,
		SampledWords: sampled,
		Misspelled:   offenders,
	}
}
