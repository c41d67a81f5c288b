// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that reach
// a headless browser or outbound HTTP requests. Using these validators
// prevents fetching non-web schemes (file://, javascript:) and keeps
// locator strings safe to log.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// locatorTypes are the element locator strategies the fetcher supports.
var locatorTypes = map[string]bool{
	"css":   true,
	"id":    true,
	"xpath": true,
}

// langPattern matches BCP-47-ish language tags: a 2-3 letter primary
// subtag with optional subtags like "en-US" or "pt-BR".
var langPattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)

// ValidateTargetURL validates a URL before it is handed to the
// headless browser.
//
// Valid targets:
//   - Absolute http:// or https:// URLs
//   - Non-empty host
//
// Returns an error if the URL is invalid.
//
// Example:
//
//	if err := validation.ValidateTargetURL(req.URL); err != nil {
//	    return nil, fmt.Errorf("invalid target: %w", err)
//	}
//	// Safe to navigate to
func ValidateTargetURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

// ValidateLocatorType reports whether t is a supported locator
// strategy ("css", "id", or "xpath").
func ValidateLocatorType(t string) bool {
	return locatorTypes[t]
}

// ValidateLocator validates an element locator string.
//
// Locators are passed to browser query APIs and echoed into logs, so
// they must be non-empty, reasonably short, and free of control
// characters.
func ValidateLocator(locator string) error {
	if strings.TrimSpace(locator) == "" {
		return fmt.Errorf("locator cannot be empty")
	}
	if len(locator) > 512 {
		return fmt.Errorf("locator too long (%d chars, max 512)", len(locator))
	}
	for _, r := range locator {
		if r < 0x20 && r != '\t' {
			return fmt.Errorf("locator contains control character %q", r)
		}
	}
	return nil
}

// SanitizeLanguageTag normalizes and validates a dictionary language
// tag. Returns the lowercase primary form if valid, or an error.
//
// Use this when you need both validation and normalization:
//
//	lang, err := validation.SanitizeLanguageTag(req.Lang)
//	if err != nil {
//	    return err
//	}
//	// lang is lowercase and validated
func SanitizeLanguageTag(tag string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return "", fmt.Errorf("language tag cannot be empty")
	}
	if !langPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid language tag: %q", tag)
	}
	return normalized, nil
}
