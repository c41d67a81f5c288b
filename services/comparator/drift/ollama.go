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

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// OllamaProvider scores drift with a locally hosted Ollama model.
type OllamaProvider struct {
	model llms.Model
}

// NewOllamaProvider connects to an Ollama server. serverURL may be
// empty to use the Ollama default (http://localhost:11434). Returns
// nil when model is empty, matching the other constructors.
func NewOllamaProvider(serverURL, model string) (*OllamaProvider, error) {
	if model == "" {
		return nil, nil
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to ollama: %w", err)
	}
	return &OllamaProvider{model: llm}, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }

// ScoreSemanticDrift prompts the local model for a JSON drift judgment.
func (p *OllamaProvider) ScoreSemanticDrift(ctx context.Context, expected, actual string) (*datatypes.DriftResult, error) {
	prompt := driftSystemPrompt + "\n\n" + driftUserPrompt(expected, actual)
	reply, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: %v", ErrUnavailable, err)
	}
	return parseModelJudgment("ollama", reply)
}
