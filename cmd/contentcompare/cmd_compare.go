// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/ContentCompare/services/comparator/analysis"
	"github.com/AleutianAI/ContentCompare/services/comparator/drift"
)

var compareCmd = &cobra.Command{
	Use:   "compare <expected-file> <actual-file>",
	Short: "Diff two text files and score their similarity",
	Long: `Normalizes and character-diffs two local text files the same way the
HTTP service compares pasted content against a live page, then scores
duplication, intent relevance, and lexical meaning drift.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompareCommand,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompareCommand(cmd *cobra.Command, args []string) error {
	expectedRaw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	actualRaw, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}

	expected := analysis.Normalize(string(expectedRaw))
	actual := analysis.Normalize(string(actualRaw))

	diffResult := analysis.Diff(expected, actual)
	duplication := analysis.AnalyzeDuplication(expected, actual, analysis.DefaultDuplicationOptions())
	intent := analysis.AnalyzeIntentRelevance(expected, actual)
	meaning := drift.NewChain(drift.NewLexicalProvider()).Score(context.Background(), expected, actual)

	logger.Debug("comparison complete", "run_id", runID, "status", diffResult.Status)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"status":          diffResult.Status,
			"expectedHtml":    diffResult.ExpectedMarkup,
			"actualHtml":      diffResult.ActualMarkup,
			"duplication":     duplication,
			"intentRelevance": intent,
			"meaningDrift":    meaning,
		})
	}

	fmt.Printf("Status:            %s\n", diffResult.Status)
	fmt.Printf("Duplication:       %d\n", duplication.Score)
	fmt.Printf("Intent relevance:  %d\n", intent.Score)
	fmt.Printf("Meaning drift:     %d\n", meaning.Score)
	if meaning.Summary != "" {
		fmt.Printf("Drift summary:     %s\n", meaning.Summary)
	}
	return nil
}
