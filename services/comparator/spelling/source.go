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
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
)

// ErrNoDictionary is returned by a Source when it has no dictionary for
// the requested language. The analyzer converts it into an explicit
// "unavailable" result.
var ErrNoDictionary = errors.New("no dictionary for language")

// Source loads dictionaries by language tag.
//
// # Description
//
// Each supported dictionary format gets its own Source implementation,
// chosen at configuration time. The cache calls Load at most once per
// language per process lifetime (barring failures, which are retried on
// the next request).
type Source interface {
	// Load fetches and parses the dictionary for lang.
	// Returns ErrNoDictionary when lang is not configured.
	Load(ctx context.Context, lang string) (Dictionary, error)

	// Languages lists the language tags this source is configured for.
	Languages() []string
}

// =============================================================================
// HTTP word list source
// =============================================================================

// HTTPWordListSource loads newline-delimited word lists over HTTP, one
// URL per language tag.
type HTTPWordListSource struct {
	// URLs maps language tags to word list URLs.
	URLs map[string]string

	// Client is the outbound HTTP client. Defaults to
	// http.DefaultClient when nil.
	Client *http.Client

	// MaxBytes bounds the downloaded list size. Defaults to 8 MiB.
	MaxBytes int64
}

const defaultMaxDictionaryBytes = 8 << 20

// Load implements Source.
func (s *HTTPWordListSource) Load(ctx context.Context, lang string) (Dictionary, error) {
	url, ok := s.URLs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDictionary, lang)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dictionary request for %s: %w", lang, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary for %s: %w", lang, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dictionary for %s: unexpected status %d", lang, resp.StatusCode)
	}

	maxBytes := s.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxDictionaryBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read dictionary for %s: %w", lang, err)
	}

	return NewWordSet(lang, string(body)), nil
}

// Languages implements Source.
func (s *HTTPWordListSource) Languages() []string {
	return sortedKeys(s.URLs)
}

// =============================================================================
// File word list source
// =============================================================================

// FileWordListSource loads newline-delimited word lists from local
// files, one path per language tag. Used for offline deployments and
// tests.
type FileWordListSource struct {
	// Paths maps language tags to word list file paths.
	Paths map[string]string
}

// Load implements Source.
func (s *FileWordListSource) Load(ctx context.Context, lang string) (Dictionary, error) {
	path, ok := s.Paths[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDictionary, lang)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file for %s: %w", lang, err)
	}
	return NewWordSet(lang, string(data)), nil
}

// Languages implements Source.
func (s *FileWordListSource) Languages() []string {
	return sortedKeys(s.Paths)
}

// =============================================================================
// Multi source
// =============================================================================

// MultiSource tries each source in order; the first one configured for
// the requested language wins. Lets deployments mix local files with
// HTTP word lists.
type MultiSource struct {
	Sources []Source
}

// Load implements Source.
func (s *MultiSource) Load(ctx context.Context, lang string) (Dictionary, error) {
	for _, src := range s.Sources {
		dict, err := src.Load(ctx, lang)
		if errors.Is(err, ErrNoDictionary) {
			continue
		}
		return dict, err
	}
	return nil, fmt.Errorf("%w: %s", ErrNoDictionary, lang)
}

// Languages implements Source. Duplicate tags are listed once.
func (s *MultiSource) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, src := range s.Sources {
		for _, lang := range src.Languages() {
			if !seen[lang] {
				seen[lang] = true
				out = append(out, lang)
			}
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
