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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/ContentCompare/services/comparator/datatypes"
)

// HealthCheck returns the handler for GET /health.
//
// # Description
//
// Liveness probe. Always returns 200 with {"ok": true}; it carries no
// dependency checks so orchestrators can use it for restarts without
// coupling to downstream availability.
func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ListProviders returns the handler for GET /providers.
//
// # Description
//
// Reports which optional capabilities this deployment has configured:
// the meaning-drift provider chain in priority order and the spelling
// dictionary languages. Never exposes keys or endpoints.
func ListProviders(comparison Comparison) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, datatypes.ProvidersResponse{
			DriftProviders: comparison.DriftProviders(),
			Dictionaries:   comparison.Dictionaries(),
		})
	}
}
