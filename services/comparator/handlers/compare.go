// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the HTTP endpoints of the content
// comparator.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/ContentCompare/pkg/validation"
	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

var compareTracer = otel.Tracer("contentcompare/handlers/compare")

// Comparison is the orchestrator surface the handlers depend on.
// Satisfied by *services.Comparator; tests inject fakes.
type Comparison interface {
	Compare(ctx context.Context, req *datatypes.CompareRequest) (*datatypes.CompareResponse, error)
	AnalyzeContent(ctx context.Context, req *datatypes.CQIRequest) *datatypes.CQIResponse
	DriftProviders() []string
	Dictionaries() []string
}

// CompareContent returns the handler for POST /compare.
//
// # Description
//
// Validates the request body, runs the full comparison pipeline, and
// returns the combined payload: diff markup, CQI, and every auxiliary
// analyzer section.
//
// # Inputs
//
//   - comparison: The comparison orchestrator.
//
// # Outputs
//
//   - 200: datatypes.CompareResponse
//   - 400: {"error": "Missing required fields"} when a field is absent,
//     or a descriptive error for a malformed url or locator
//   - 500: {"error": "..."} when the live page text cannot be fetched
//
// # Examples
//
//	router.POST("/compare", handlers.CompareContent(comparator))
func CompareContent(comparison Comparison) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := compareTracer.Start(c.Request.Context(), "CompareContent")
		defer span.End()

		var req datatypes.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Warn("compare request rejected", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		// The url and locator reach the headless browser; reject
		// non-web schemes and unloggable locators before fetching.
		if err := validation.ValidateTargetURL(req.URL); err != nil {
			slog.Warn("compare request rejected", "url", req.URL, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validation.ValidateLocator(req.Locator); err != nil {
			slog.Warn("compare request rejected", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := comparison.Compare(ctx, &req)
		if err != nil {
			slog.Error("comparison failed", "url", req.URL, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
