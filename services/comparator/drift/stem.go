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

import "strings"

// stemWord reduces an English word to a rough stem so that
// inflectional variants ("running", "runs", "run") collapse to the
// same concept key. This is a lightweight suffix stripper, not a full
// Porter stemmer; good enough for concept-overlap comparison.
func stemWord(word string) string {
	w := strings.ToLower(word)
	if len(w) <= 3 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		w = w[:len(w)-1]
	}
	if len(w) <= 3 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		w = w[:len(w)-3]
		w = undouble(w)
	case strings.HasSuffix(w, "edly") && len(w) > 6:
		w = w[:len(w)-4]
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		w = w[:len(w)-2]
		w = undouble(w)
	case strings.HasSuffix(w, "ly") && len(w) > 4:
		w = w[:len(w)-2]
	}
	if len(w) <= 3 {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ation") && len(w) > 7:
		w = w[:len(w)-5] + "e"
	case strings.HasSuffix(w, "ness") && len(w) > 5:
		w = w[:len(w)-4]
	case strings.HasSuffix(w, "ment") && len(w) > 6:
		w = w[:len(w)-4]
	}
	return w
}

// undouble collapses a doubled final consonant left behind by suffix
// removal ("stopp" -> "stop") but keeps legitimate doubles like "ll"
// in "fall" alone when the word is short.
func undouble(w string) string {
	n := len(w)
	if n < 4 {
		return w
	}
	last := w[n-1]
	if last == w[n-2] && !isVowel(last) && last != 'l' && last != 's' && last != 'z' {
		return w[:n-1]
	}
	return w
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
