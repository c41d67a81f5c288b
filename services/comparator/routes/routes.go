// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package routes wires the comparator's HTTP endpoints.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/ContentCompare/services/comparator/handlers"
	"github.com/AleutianAI/ContentCompare/services/comparator/middleware"
)

// SetupRoutes registers every endpoint on the router.
//
// # Description
//
// Endpoint map:
//
//	GET  /health     - liveness probe, always open
//	GET  /metrics    - Prometheus metrics, always open
//	GET  /providers  - configured drift providers and dictionaries
//	POST /compare    - full content comparison
//	POST /cqi        - standalone content scoring
//
// The comparison endpoints are also exposed under /v1 so future
// breaking changes can version cleanly. When apiToken is non-empty
// everything except /health and /metrics requires it.
//
// # Inputs
//
//   - router: The Gin engine to register on.
//   - comparison: The comparison orchestrator.
//   - apiToken: Optional static bearer token; empty leaves the API open.
func SetupRoutes(router *gin.Engine, comparison handlers.Comparison, apiToken string) {
	router.GET("/health", handlers.HealthCheck())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	api.Use(middleware.BearerAuth(apiToken))
	registerAPI(api, comparison)

	v1 := router.Group("/v1")
	v1.Use(middleware.BearerAuth(apiToken))
	registerAPI(v1, comparison)
}

func registerAPI(g *gin.RouterGroup, comparison handlers.Comparison) {
	g.GET("/providers", handlers.ListProviders(comparison))
	g.POST("/compare", handlers.CompareContent(comparison))
	g.POST("/cqi", handlers.ScoreContent(comparison))
}
