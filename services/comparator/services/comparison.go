// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package services holds the comparison orchestrator that ties the
// fetcher, the diff engine, and the analyzers into single responses
// for the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/ContentCompare/pkg/validation"
	"github.com/AleutianAI/ContentCompare/services/comparator/analysis"
	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
	"github.com/AleutianAI/ContentCompare/services/comparator/drift"
	"github.com/AleutianAI/ContentCompare/services/comparator/fetch"
	"github.com/AleutianAI/ContentCompare/services/comparator/observability"
	"github.com/AleutianAI/ContentCompare/services/comparator/spelling"
)

var comparisonTracer = otel.Tracer("contentcompare/services/comparison")

// DefaultSpellLanguage is used when a request omits the lang field.
const DefaultSpellLanguage = "en"

// spellLanguage normalizes a requested dictionary language tag.
// Spelling is advisory, so a malformed tag degrades to the default
// instead of failing the request. The sanitized form also keeps path
// traversal out of file-backed dictionary lookups.
func spellLanguage(requested string) string {
	lang, err := validation.SanitizeLanguageTag(requested)
	if err != nil {
		return DefaultSpellLanguage
	}
	return lang
}

// Options bundles the tunables for every analyzer the orchestrator
// runs. NewComparator fills in defaults: a zero-valued analyzer block
// takes that analyzer's defaults wholesale, and the link checker
// limits are defaulted field by field since zero concurrency or a
// zero rate would stall every check.
type Options struct {
	CQI         analysis.CQIOptions
	SEO         analysis.SEOOptions
	Duplication analysis.DuplicationOptions
	Links       analysis.LinkCheckOptions
}

// DefaultOptions returns the analyzer defaults.
func DefaultOptions() Options {
	return Options{
		CQI:         analysis.DefaultCQIOptions(),
		SEO:         analysis.DefaultSEOOptions(),
		Duplication: analysis.DefaultDuplicationOptions(),
		Links:       analysis.DefaultLinkCheckOptions(),
	}
}

// withDefaults returns a copy of o with unset tunables replaced, so a
// partially filled Options can never hang the link worker pool or
// degenerate the quality index math.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CQI == (analysis.CQIOptions{}) {
		o.CQI = d.CQI
	}
	if o.SEO == (analysis.SEOOptions{}) {
		o.SEO = d.SEO
	}
	if o.Duplication == (analysis.DuplicationOptions{}) {
		o.Duplication = d.Duplication
	}
	if o.Links.Mode == "" {
		o.Links.Mode = d.Links.Mode
	}
	if o.Links.Timeout <= 0 {
		o.Links.Timeout = d.Links.Timeout
	}
	if o.Links.MaxURLs <= 0 {
		o.Links.MaxURLs = d.Links.MaxURLs
	}
	if o.Links.Concurrency <= 0 {
		o.Links.Concurrency = d.Links.Concurrency
	}
	if o.Links.RatePerSecond <= 0 {
		o.Links.RatePerSecond = d.Links.RatePerSecond
	}
	return o
}

// Comparator orchestrates a full content comparison.
//
// # Description
//
// Compare fetches the live page text, diffs it against the pasted
// content, and fans the auxiliary analyzers out concurrently. Every
// analyzer is advisory: only a fetch failure fails the request.
//
// # Thread Safety
//
// Safe for concurrent use; all fields are set at construction and the
// collaborators are themselves concurrency-safe.
type Comparator struct {
	fetcher    fetch.TextFetcher
	dicts      *spelling.Cache
	drift      *drift.Chain
	linkClient analysis.HTTPClient
	opts       Options
}

// NewComparator wires the orchestrator. dicts and chain may be nil
// when spelling or drift are not configured; the corresponding result
// sections then report unavailable.
func NewComparator(fetcher fetch.TextFetcher, dicts *spelling.Cache, chain *drift.Chain, linkClient analysis.HTTPClient, opts Options) *Comparator {
	if chain == nil {
		chain = drift.NewChain()
	}
	return &Comparator{
		fetcher:    fetcher,
		dicts:      dicts,
		drift:      chain,
		linkClient: linkClient,
		opts:       opts.withDefaults(),
	}
}

// DriftProviders lists the configured drift provider names.
func (c *Comparator) DriftProviders() []string {
	return c.drift.Providers()
}

// Dictionaries lists the spelling languages a dictionary source is
// configured for.
func (c *Comparator) Dictionaries() []string {
	if c.dicts == nil {
		return []string{}
	}
	return c.dicts.Languages()
}

// Compare runs the full pipeline for POST /compare.
//
// # Inputs
//
//   - ctx: request context; cancellation stops the link checker and
//     any in-flight dictionary or drift calls
//   - req: validated compare request
//
// # Outputs
//
//   - *datatypes.CompareResponse with the diff markup and every
//     analyzer section populated
//   - error only when the live page text cannot be fetched
func (c *Comparator) Compare(ctx context.Context, req *datatypes.CompareRequest) (*datatypes.CompareResponse, error) {
	ctx, span := comparisonTracer.Start(ctx, "Comparator.Compare")
	defer span.End()

	start := time.Now()
	pageText, err := c.fetcher.FetchText(ctx, req.URL, req.Locator, req.Type)
	if err != nil {
		observability.FetchFailures.Inc()
		return nil, fmt.Errorf("fetching page text from %s: %w", req.URL, err)
	}
	observability.FetchDuration.Observe(time.Since(start).Seconds())

	expected := analysis.Normalize(req.PastedContent)
	actual := analysis.Normalize(pageText)

	diffResult := analysis.Diff(expected, actual)

	resp := &datatypes.CompareResponse{
		ExpectedHTML: diffResult.ExpectedMarkup,
		ActualHTML:   diffResult.ActualMarkup,
		Status:       diffResult.Status,
	}

	lang := spellLanguage(req.Lang)

	// The analyzers are independent; run them concurrently. None of
	// them returns an error so the group always joins cleanly.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cqi := analysis.CalculateCQI(expected, c.opts.CQI)
		resp.CQI = &cqi
		return nil
	})
	g.Go(func() error {
		sp := c.analyzeSpelling(gctx, expected, lang)
		resp.Spelling = &sp
		return nil
	})
	g.Go(func() error {
		seo := analysis.AnalyzeSEO(expected, req.Keywords, c.opts.SEO)
		resp.SEO = &seo
		return nil
	})
	g.Go(func() error {
		// Engagement reads line structure, so it gets the raw pasted
		// content before whitespace collapsing.
		eng := analysis.AnalyzeEngagement(req.PastedContent)
		resp.Engagement = &eng
		return nil
	})
	g.Go(func() error {
		dup := analysis.AnalyzeDuplication(expected, actual, c.opts.Duplication)
		resp.Duplication = &dup
		return nil
	})
	g.Go(func() error {
		links := analysis.CheckLinks(gctx, expected, c.linkClient, c.opts.Links)
		resp.BrokenLinks = &links
		return nil
	})
	g.Go(func() error {
		intent := analysis.AnalyzeIntentRelevance(expected, actual)
		resp.IntentRelevance = &intent
		return nil
	})
	g.Go(func() error {
		resp.MeaningDrift = c.drift.Score(gctx, expected, actual)
		return nil
	})
	_ = g.Wait()

	observability.ComparisonsTotal.WithLabelValues(string(resp.Status)).Inc()
	slog.Debug("comparison complete",
		"url", req.URL,
		"status", resp.Status,
		"cqi", resp.CQI.Score,
		"elapsed", time.Since(start))
	return resp, nil
}

// AnalyzeContent scores pasted content standalone for POST /cqi. No
// page fetch and no network analyzers run.
func (c *Comparator) AnalyzeContent(ctx context.Context, req *datatypes.CQIRequest) *datatypes.CQIResponse {
	ctx, span := comparisonTracer.Start(ctx, "Comparator.AnalyzeContent")
	defer span.End()

	text := analysis.Normalize(req.PastedContent)
	lang := spellLanguage(req.Lang)

	cqi := analysis.CalculateCQI(text, c.opts.CQI)
	sp := c.analyzeSpelling(ctx, text, lang)
	return &datatypes.CQIResponse{CQI: &cqi, Spelling: &sp}
}

func (c *Comparator) analyzeSpelling(ctx context.Context, text, lang string) datatypes.SpellingResult {
	if c.dicts == nil {
		return datatypes.SpellingResult{
			Available: false,
			Language:  lang,
			Note:      "No dictionary source configured.",
		}
	}
	return spelling.Analyze(ctx, text, lang, c.dicts)
}
