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
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// GroqBaseURL is the OpenAI-compatible endpoint Groq exposes.
const GroqBaseURL = "https://api.groq.com/openai/v1"

const driftSystemPrompt = "You compare two texts and judge how far their " +
	"meaning has drifted. Respond with only a JSON object of the form " +
	`{"score": <0-100 integer, 0 = same meaning, 100 = unrelated>, ` +
	`"summary": "<one or two sentences>"}.`

// chatCompleter is the slice of the OpenAI client the provider needs;
// tests inject a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider scores drift with an OpenAI-compatible chat API.
// Groq works through the same provider by pointing the client at
// GroqBaseURL.
type OpenAIProvider struct {
	name   string
	client chatCompleter
	model  string
}

// NewOpenAIProvider builds a provider against api.openai.com.
// Returns nil when apiKey is empty so callers can append the result
// to a chain unconditionally.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		name:   "openai",
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewGroqProvider builds a provider against Groq's OpenAI-compatible
// endpoint. Returns nil when apiKey is empty.
func NewGroqProvider(apiKey, model string) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = GroqBaseURL
	return &OpenAIProvider{
		name:   "groq",
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return p.name }

// ScoreSemanticDrift asks the model for a JSON drift judgment.
func (p *OpenAIProvider) ScoreSemanticDrift(ctx context.Context, expected, actual string) (*datatypes.DriftResult, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: driftSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: driftUserPrompt(expected, actual)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: %s returned no choices", ErrUnavailable, p.name)
	}
	return parseModelJudgment(p.name, resp.Choices[0].Message.Content)
}

func driftUserPrompt(expected, actual string) string {
	return fmt.Sprintf("Expected text:\n%s\n\nActual text:\n%s", expected, actual)
}

// parseModelJudgment extracts the JSON object from a model reply,
// tolerating markdown code fences and surrounding prose.
func parseModelJudgment(provider, content string) (*datatypes.DriftResult, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: %s reply had no JSON object", ErrUnavailable, provider)
	}
	var judgment struct {
		Score   int    `json:"score"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &judgment); err != nil {
		return nil, fmt.Errorf("%w: %s reply was not valid JSON: %v", ErrUnavailable, provider, err)
	}
	return &datatypes.DriftResult{
		Score:   clampScore(judgment.Score),
		Summary: strings.TrimSpace(judgment.Summary),
	}, nil
}
