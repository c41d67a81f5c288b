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
	"github.com/AleutianAI/ContentCompare/services/comparator/spelling"
)

var (
	cqiCmd = &cobra.Command{
		Use:   "cqi [file]",
		Short: "Score content quality from a file or stdin",
		Long: `Computes the content quality index for the given text: vocabulary
richness, readability, and length depth blended into a 0-100 score with
a per-section target. Optionally runs a spelling check against a local
word list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCQICommand,
	}

	wordListPath string
	spellLang    string
)

func init() {
	cqiCmd.Flags().StringVar(&wordListPath, "wordlist", "", "newline-delimited word list for spell checking")
	cqiCmd.Flags().StringVar(&spellLang, "lang", "en", "spelling dictionary language tag")
	rootCmd.AddCommand(cqiCmd)
}

func runCQICommand(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	text := analysis.Normalize(raw)
	result := analysis.CalculateCQI(text, analysis.DefaultCQIOptions())
	logger.Debug("cqi computed", "run_id", runID, "score", result.Score)

	out := map[string]any{"cqi": result}

	if wordListPath != "" {
		cache := spelling.NewCache(&spelling.FileWordListSource{
			Paths: map[string]string{spellLang: wordListPath},
		})
		sp := spelling.Analyze(context.Background(), text, spellLang, cache)
		out["spelling"] = sp
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("CQI score:     %d / %d (%s)\n", result.Score, result.TargetCQI, result.Status)
	fmt.Printf("Section:       %s\n", result.SectionType)
	fmt.Printf("Reliable:      %v\n", result.Reliable)
	fmt.Printf("Summary:       %s\n", result.Summary)
	if sp, ok := out["spelling"]; ok {
		b, _ := json.MarshalIndent(sp, "", "  ")
		fmt.Printf("Spelling:      %s\n", b)
	}
	return nil
}
