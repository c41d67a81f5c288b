// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package fetch wraps the headless-browser page text collaborator.
//
// The comparator needs exactly one capability from the browser: given a
// URL, a locator, and a locator type, return the rendered inner text of
// that element. Everything else (browser lifecycle, navigation waits,
// teardown) stays behind the TextFetcher interface so handlers and
// tests can inject fakes.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Locator types accepted by FetchText.
const (
	LocatorCSS   = "css"
	LocatorID    = "id"
	LocatorXPath = "xpath"
)

// TextFetcher extracts the rendered inner text of one page element.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use; each FetchText call
// owns its own browser context.
type TextFetcher interface {
	// FetchText navigates to url, resolves locator per locatorType
	// (css selector, element id, or XPath expression), and returns the
	// element's rendered inner text.
	//
	// Any navigation, launch, or locator-resolution failure surfaces
	// as an error; the orchestrator converts it into a 500.
	FetchText(ctx context.Context, url, locator, locatorType string) (string, error)
}

// ChromeFetcher implements TextFetcher with a headless Chrome instance
// driven over the DevTools protocol.
type ChromeFetcher struct {
	// Timeout bounds one whole fetch: launch, navigate, resolve,
	// extract.
	Timeout time.Duration

	// ExecAllocatorOptions extends the default Chrome launch flags.
	// Mostly used in containers (no-sandbox, disable-dev-shm-usage).
	ExecAllocatorOptions []chromedp.ExecAllocatorOption
}

// NewChromeFetcher creates a fetcher with the given per-fetch timeout.
// A non-positive timeout defaults to 30 seconds.
func NewChromeFetcher(timeout time.Duration) *ChromeFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeFetcher{Timeout: timeout}
}

// FetchText implements TextFetcher.
//
// # Description
//
// Launches a fresh headless browser context, navigates to url waiting
// for DOM content, resolves the locator, extracts the element's inner
// text, and tears the context down. The browser context never outlives
// the call.
func (f *ChromeFetcher) FetchText(ctx context.Context, url, locator, locatorType string) (string, error) {
	sel, queryOpt, err := resolveLocator(locator, locatorType)
	if err != nil {
		return "", err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], f.ExecAllocatorOptions...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, f.Timeout)
	defer cancelRun()

	var text string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text(sel, &text, queryOpt),
	)
	if err != nil {
		return "", fmt.Errorf("fetch text from %s (locator %q, type %s): %w", url, locator, locatorType, err)
	}

	return text, nil
}

// resolveLocator maps the locator type onto a chromedp selector and
// query option.
func resolveLocator(locator, locatorType string) (string, chromedp.QueryOption, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", nil, fmt.Errorf("locator must not be empty")
	}

	switch locatorType {
	case LocatorCSS:
		return locator, chromedp.ByQuery, nil
	case LocatorID:
		return strings.TrimPrefix(locator, "#"), chromedp.ByID, nil
	case LocatorXPath:
		return locator, chromedp.BySearch, nil
	default:
		return "", nil, fmt.Errorf("unsupported locator type %q (want css, id, or xpath)", locatorType)
	}
}
