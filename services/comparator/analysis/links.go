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
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
	"github.com/AleutianAI/ContentCompare/services/comparator/observability"
)

// LinkCheckMode selects how (and whether) URLs are probed.
type LinkCheckMode string

const (
	// LinkCheckOff skips all probing: score 100, details.skipped=true,
	// no network calls.
	LinkCheckOff LinkCheckMode = "off"

	// LinkCheckFast probes at most MaxURLs URLs.
	LinkCheckFast LinkCheckMode = "fast"

	// LinkCheckSync probes every URL found.
	LinkCheckSync LinkCheckMode = "sync"
)

// HTTPClient is the outbound HTTP dependency of the link checker.
// Satisfied by *http.Client; tests inject fakes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LinkCheckOptions tunes the broken-link checker.
type LinkCheckOptions struct {
	Mode LinkCheckMode

	// Timeout bounds each individual HEAD request.
	Timeout time.Duration

	// MaxURLs caps how many URLs are probed in fast mode.
	MaxURLs int

	// Concurrency bounds parallel probes.
	Concurrency int

	// RatePerSecond throttles outbound requests across all URLs of one
	// check; polite to shared targets.
	RatePerSecond float64
}

// DefaultLinkCheckOptions returns the documented defaults.
func DefaultLinkCheckOptions() LinkCheckOptions {
	return LinkCheckOptions{
		Mode:          LinkCheckFast,
		Timeout:       5 * time.Second,
		MaxURLs:       10,
		Concurrency:   8,
		RatePerSecond: 20,
	}
}

// CheckLinks extracts the unique URLs from text and probes each with a
// HEAD request.
//
// # Description
//
// Probes run concurrently, bounded by Concurrency and throttled by a
// shared rate limiter. Each URL gets its own timeout via context
// cancellation; a slow or hanging URL never delays the others past its
// own deadline. Network failures and timeouts count as broken with
// status "error" or "timeout"; the aggregate never fails. The score is
// the fraction of successful URLs scaled to 0..100; a text with no URLs
// scores 100.
//
// # Details keys
//
//   - "links": []datatypes.LinkCheck
//   - "checked", "broken": int
//   - "skipped": bool (mode off only)
//   - "truncated": bool (fast mode hit the cap)
func CheckLinks(ctx context.Context, text string, client HTTPClient, opts LinkCheckOptions) datatypes.AnalyzerResult {
	urls := ExtractURLs(text)

	if opts.Mode == LinkCheckOff {
		return datatypes.AnalyzerResult{
			Score: 100,
			Details: map[string]any{
				"skipped": true,
				"links":   []datatypes.LinkCheck{},
				"checked": 0,
				"broken":  0,
			},
		}
	}

	truncated := false
	if opts.Mode == LinkCheckFast && len(urls) > opts.MaxURLs {
		urls = urls[:opts.MaxURLs]
		truncated = true
	}

	if len(urls) == 0 {
		return datatypes.AnalyzerResult{
			Score: 100,
			Details: map[string]any{
				"links":   []datatypes.LinkCheck{},
				"checked": 0,
				"broken":  0,
			},
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	checks := make([]datatypes.LinkCheck, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, u := range urls {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				checks[i] = datatypes.LinkCheck{URL: u, OK: false, Status: "error"}
				return nil
			}
			checks[i] = probeURL(gctx, client, u, opts.Timeout)
			return nil
		})
	}
	// Workers record failures in-place and never return an error.
	_ = g.Wait()

	ok := 0
	for _, c := range checks {
		if c.OK {
			ok++
		}
		observability.LinkChecks.WithLabelValues(linkResultLabel(c)).Inc()
	}
	broken := len(checks) - ok

	sort.Slice(checks, func(i, j int) bool { return checks[i].URL < checks[j].URL })

	details := map[string]any{
		"links":   checks,
		"checked": len(checks),
		"broken":  broken,
	}
	if truncated {
		details["truncated"] = true
	}

	return datatypes.AnalyzerResult{
		Score:   int(math.Round(100 * float64(ok) / float64(len(checks)))),
		Details: details,
	}
}

func linkResultLabel(c datatypes.LinkCheck) string {
	switch {
	case c.OK:
		return "ok"
	case c.Status == "timeout":
		return "timeout"
	case c.Status == "error":
		return "error"
	default:
		return "broken"
	}
}

// probeURL issues one HEAD request with its own deadline and classifies
// the outcome. Any 2xx or 3xx status counts as healthy.
func probeURL(ctx context.Context, client HTTPClient, url string, timeout time.Duration) datatypes.LinkCheck {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		return datatypes.LinkCheck{URL: url, OK: false, Status: "error"}
	}

	resp, err := client.Do(req)
	if err != nil {
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			status = "timeout"
		}
		return datatypes.LinkCheck{URL: url, OK: false, Status: status}
	}
	defer resp.Body.Close()

	return datatypes.LinkCheck{
		URL:    url,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 400,
		Status: fmt.Sprintf("%d", resp.StatusCode),
	}
}
