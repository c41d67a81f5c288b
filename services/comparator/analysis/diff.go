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
	"html"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// Diff computes a character-level shortest edit script between the
// normalized expected and actual strings and renders it as two parallel
// marked-up strings.
//
// # Description
//
// Walks the Myers diff operation sequence:
//
//   - equal: the literal text is appended to both outputs
//   - delete: the text is wrapped in `<span class="removed">` and
//     appended to the expected output only
//   - insert: the text is wrapped in `<span class="added">` and
//     appended to the actual output only
//
// All literal text is HTML-escaped, so stripping the span tags and
// unescaping reconstructs each input exactly. The result is DiffFail as
// soon as any added or removed span is non-empty, DiffPass otherwise.
//
// Diff is a pure function and cannot fail on string input. Empty inputs
// degrade naturally: one side empty produces a single insert or delete
// span covering the whole other side.
func Diff(expected, actual string) datatypes.DiffResult {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)

	var expectedHTML, actualHTML strings.Builder
	changed := false

	for _, d := range diffs {
		escaped := html.EscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			expectedHTML.WriteString(escaped)
			actualHTML.WriteString(escaped)
		case diffmatchpatch.DiffDelete:
			if d.Text != "" {
				changed = true
			}
			expectedHTML.WriteString(`<span class="removed">`)
			expectedHTML.WriteString(escaped)
			expectedHTML.WriteString(`</span>`)
		case diffmatchpatch.DiffInsert:
			if d.Text != "" {
				changed = true
			}
			actualHTML.WriteString(`<span class="added">`)
			actualHTML.WriteString(escaped)
			actualHTML.WriteString(`</span>`)
		}
	}

	status := datatypes.DiffPass
	if changed {
		status = datatypes.DiffFail
	}

	return datatypes.DiffResult{
		ExpectedMarkup: expectedHTML.String(),
		ActualMarkup:   actualHTML.String(),
		Status:         status,
	}
}
