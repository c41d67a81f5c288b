// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the character diff engine

package analysis

import (
	"html"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

var spanTags = regexp.MustCompile(`</?span[^>]*>`)

// stripMarkup removes span tags and undoes HTML escaping, recovering the
// raw text a markup string was rendered from.
func stripMarkup(markup string) string {
	return html.UnescapeString(spanTags.ReplaceAllString(markup, ""))
}

func TestDiff_IdenticalStringsPass(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog."
	result := Diff(text, text)

	assert.Equal(t, datatypes.DiffPass, result.Status)
	assert.Equal(t, text, result.ExpectedMarkup)
	assert.Equal(t, text, result.ActualMarkup)
	assert.NotContains(t, result.ExpectedMarkup, "<span")
	assert.NotContains(t, result.ActualMarkup, "<span")
}

func TestDiff_InsertionMarkedAdded(t *testing.T) {
	result := Diff("Hello world", "Hello there world")

	assert.Equal(t, datatypes.DiffFail, result.Status)
	assert.NotContains(t, result.ExpectedMarkup, `class="removed"`)
	assert.Contains(t, result.ActualMarkup, `class="added"`)
	assert.Contains(t, stripMarkup(result.ActualMarkup), "there")
}

func TestDiff_DeletionMarkedRemoved(t *testing.T) {
	result := Diff("Hello there world", "Hello world")

	assert.Equal(t, datatypes.DiffFail, result.Status)
	assert.Contains(t, result.ExpectedMarkup, `class="removed"`)
	assert.NotContains(t, result.ActualMarkup, `class="added"`)
}

func TestDiff_EmptySides(t *testing.T) {
	onlyInsert := Diff("", "brand new")
	assert.Equal(t, datatypes.DiffFail, onlyInsert.Status)
	assert.Equal(t, "", onlyInsert.ExpectedMarkup)
	assert.Equal(t, `<span class="added">brand new</span>`, onlyInsert.ActualMarkup)

	onlyDelete := Diff("all gone", "")
	assert.Equal(t, datatypes.DiffFail, onlyDelete.Status)
	assert.Equal(t, `<span class="removed">all gone</span>`, onlyDelete.ExpectedMarkup)
	assert.Equal(t, "", onlyDelete.ActualMarkup)

	bothEmpty := Diff("", "")
	assert.Equal(t, datatypes.DiffPass, bothEmpty.Status)
}

func TestDiff_Reconstruction(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		actual   string
	}{
		{"identical", "same text", "same text"},
		{"insertion", "Hello world", "Hello there world"},
		{"deletion", "one two three", "one three"},
		{"replacement", "the cat sat", "the dog sat"},
		{"disjoint", "completely different", "nothing shared at all"},
		{"html characters", "a < b & c > d", "a < b & d > c"},
		{"apostrophes", "it's here", "it's there"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Diff(tc.expected, tc.actual)
			assert.Equal(t, tc.expected, stripMarkup(result.ExpectedMarkup),
				"expected side must reconstruct exactly")
			assert.Equal(t, tc.actual, stripMarkup(result.ActualMarkup),
				"actual side must reconstruct exactly")
		})
	}
}

func TestDiff_EscapesMarkupInInput(t *testing.T) {
	result := Diff(`<b>bold</b>`, `<b>bold</b>`)
	assert.Equal(t, datatypes.DiffPass, result.Status)
	assert.NotContains(t, result.ExpectedMarkup, "<b>")
	assert.Contains(t, result.ExpectedMarkup, "&lt;b&gt;")
}
