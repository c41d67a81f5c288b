// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the comparator configuration.
//
// # Description
//
// Configuration comes from three layers, later ones winning:
//
//  1. Built-in defaults (a zero-config start works)
//  2. An optional YAML file
//  3. Environment variables (secrets live here, never in YAML)
//
// API keys are env-only so config files stay safe to commit.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default listen port of the comparator service.
const DefaultPort = 12250

// Config is the full comparator configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Links    LinksConfig    `yaml:"links"`
	Spelling SpellingConfig `yaml:"spelling"`
	Drift    DriftConfig    `yaml:"drift"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Port the HTTP server listens on.
	Port int `yaml:"port"`

	// APIToken protects the API when non-empty. Env-only
	// (COMPARATOR_API_TOKEN); never read from YAML.
	APIToken string `yaml:"-"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// FetchConfig tunes the headless page fetcher.
type FetchConfig struct {
	// TimeoutSeconds bounds one navigate-and-extract cycle.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LinksConfig tunes the broken-link checker.
type LinksConfig struct {
	// Mode is off, fast, or sync.
	Mode string `yaml:"mode"`

	// TimeoutSeconds bounds each individual URL probe.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MaxURLs caps probed URLs in fast mode.
	MaxURLs int `yaml:"max_urls"`

	// Concurrency bounds parallel probes.
	Concurrency int `yaml:"concurrency"`

	// RatePerSecond throttles outbound probes.
	RatePerSecond int `yaml:"rate_per_second"`
}

// SpellingConfig maps dictionary languages to word list locations.
type SpellingConfig struct {
	// Dictionaries maps a language tag to a word list URL.
	Dictionaries map[string]string `yaml:"dictionaries"`

	// Files maps a language tag to a local word list path. Takes
	// precedence over Dictionaries for the same tag.
	Files map[string]string `yaml:"files"`
}

// DriftConfig selects the semantic drift providers. Providers with no
// credentials are skipped; the lexical fallback always runs last.
type DriftConfig struct {
	// OpenAIKey and GroqKey are env-only (OPENAI_API_KEY, GROQ_API_KEY).
	OpenAIKey string `yaml:"-"`
	GroqKey   string `yaml:"-"`

	OpenAIModel string `yaml:"openai_model"`
	GroqModel   string `yaml:"groq_model"`

	// OllamaURL is the Ollama server; empty uses the Ollama default.
	OllamaURL   string `yaml:"ollama_url"`
	OllamaModel string `yaml:"ollama_model"`
}

// AnalysisConfig exposes the analyzer tunables that deployments
// actually adjust. Everything else keeps its built-in default.
type AnalysisConfig struct {
	// SEOIdealDensity is the keyword density treated as optimal
	// (fraction, default 0.015).
	SEOIdealDensity float64 `yaml:"seo_ideal_density"`

	// DuplicationInternalWeight and DuplicationOverlapWeight blend the
	// two duplication signals (defaults 0.7 and 0.3).
	DuplicationInternalWeight float64 `yaml:"duplication_internal_weight"`
	DuplicationOverlapWeight  float64 `yaml:"duplication_overlap_weight"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     DefaultPort,
			LogLevel: "info",
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
		},
		Links: LinksConfig{
			Mode:           "fast",
			TimeoutSeconds: 5,
			MaxURLs:        10,
			Concurrency:    8,
			RatePerSecond:  20,
		},
		Spelling: SpellingConfig{},
		Drift: DriftConfig{
			OpenAIModel: "gpt-4o-mini",
			GroqModel:   "llama-3.1-8b-instant",
		},
		Analysis: AnalysisConfig{
			SEOIdealDensity:           0.015,
			DuplicationInternalWeight: 0.7,
			DuplicationOverlapWeight:  0.3,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment variables.
//
// # Inputs
//
//   - path: YAML file path; empty skips the file layer entirely
//
// # Outputs
//
//   - *Config: validated configuration
//   - error: unreadable or invalid file, or failed validation
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over the loaded config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("COMPARATOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COMPARATOR_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	cfg.Server.APIToken = os.Getenv("COMPARATOR_API_TOKEN")
	cfg.Drift.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Drift.GroqKey = os.Getenv("GROQ_API_KEY")
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Drift.OllamaURL = v
	}
}

// Validate checks the configuration for values that would misbehave at
// runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server.log_level %q must be debug, info, warn, or error", c.Server.LogLevel)
	}
	switch c.Links.Mode {
	case "off", "fast", "sync":
	default:
		return fmt.Errorf("links.mode %q must be off, fast, or sync", c.Links.Mode)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	}
	if c.Links.TimeoutSeconds <= 0 || c.Links.Concurrency <= 0 || c.Links.RatePerSecond <= 0 {
		return fmt.Errorf("links timeouts, concurrency, and rate must be positive")
	}
	if c.Links.MaxURLs <= 0 {
		return fmt.Errorf("links.max_urls must be positive")
	}
	if c.Analysis.SEOIdealDensity <= 0 || c.Analysis.SEOIdealDensity >= 1 {
		return fmt.Errorf("analysis.seo_ideal_density must be in (0, 1)")
	}
	if c.Analysis.DuplicationInternalWeight < 0 || c.Analysis.DuplicationOverlapWeight < 0 ||
		c.Analysis.DuplicationInternalWeight+c.Analysis.DuplicationOverlapWeight == 0 {
		return fmt.Errorf("duplication weights must be non-negative and not both zero")
	}
	return nil
}
