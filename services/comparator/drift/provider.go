// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package drift scores how far the meaning of the actual page text has
// drifted from the pasted expected text.
//
// Scoring is advisory and best-effort: providers are tried in priority
// order and the first success wins. External AI providers (OpenAI,
// Groq, Ollama) give semantic judgments when configured; the built-in
// lexical provider always works and needs no network. Having no
// providers at all is a normal, non-error state.
package drift

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// ErrUnavailable signals that a provider cannot currently score
// (missing key, endpoint down, malformed reply). The chain falls
// through to the next provider.
var ErrUnavailable = errors.New("drift provider unavailable")

// Provider scores semantic drift between two texts.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() string

	// ScoreSemanticDrift returns a drift score 0..100 (0 = identical
	// meaning, 100 = unrelated) with a short summary. Returns an error
	// wrapping ErrUnavailable when the provider cannot score.
	ScoreSemanticDrift(ctx context.Context, expected, actual string) (*datatypes.DriftResult, error)
}

// Chain tries providers in priority order; the first success wins.
type Chain struct {
	providers []Provider
}

// NewChain builds a provider chain. Order is priority order.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers lists the configured provider names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Score runs the chain.
//
// # Description
//
// Each provider is tried in order; unavailable providers are skipped
// with a debug log. When every provider fails (or none is configured)
// the result carries Available=false rather than an error, since drift
// is an advisory signal.
func (c *Chain) Score(ctx context.Context, expected, actual string) *datatypes.DriftResult {
	for _, p := range c.providers {
		result, err := p.ScoreSemanticDrift(ctx, expected, actual)
		if err != nil {
			slog.Debug("drift provider unavailable, trying next",
				"provider", p.Name(), "error", err)
			continue
		}
		result.Available = true
		result.Provider = p.Name()
		return result
	}
	return &datatypes.DriftResult{Available: false}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
