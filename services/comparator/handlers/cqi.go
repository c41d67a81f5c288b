// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

var cqiTracer = otel.Tracer("contentcompare/handlers/cqi")

// ScoreContent returns the handler for POST /cqi.
//
// # Description
//
// Scores pasted content standalone: the content quality index plus a
// spelling report. No page fetch and no outbound network analyzers.
//
// # Outputs
//
//   - 200: datatypes.CQIResponse
//   - 400: {"error": "Missing required fields"} on validation failure
//
// Empty pasted content is accepted and scores zero; the pointer bind
// only rejects bodies where the key is missing entirely.
func ScoreContent(comparison Comparison) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := cqiTracer.Start(c.Request.Context(), "ScoreContent")
		defer span.End()

		var body struct {
			PastedContent *string `json:"pastedContent" binding:"required"`
			Lang          string  `json:"lang"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			slog.Warn("cqi request rejected", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		req := datatypes.CQIRequest{PastedContent: *body.PastedContent, Lang: body.Lang}
		c.JSON(http.StatusOK, comparison.AnalyzeContent(ctx, &req))
	}
}
