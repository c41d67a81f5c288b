// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the comparator
// service.
//
// # Authentication
//
// The service runs open by default. When an API token is configured,
// BearerAuth requires every request on the protected routes to carry
// it:
//
//	Authorization: Bearer <token>
//
// Health and metrics endpoints stay unauthenticated either way so
// probes and scrapers keep working.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth creates a Gin middleware that checks a static API token.
//
// # Description
//
// With an empty token the middleware is a no-op, which is the open
// deployment mode. Otherwise the bearer token from the Authorization
// header must match; comparison is constant-time.
//
// # Inputs
//
//   - token: The expected API token. Empty disables the check.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware ready for use with Gin.
//
// # Examples
//
//	v1 := router.Group("/")
//	v1.Use(middleware.BearerAuth(cfg.Server.APIToken))
//
// # Thread Safety
//
// Thread-safe. The returned middleware can be used concurrently.
func BearerAuth(token string) gin.HandlerFunc {
	if token == "" {
		return func(c *gin.Context) { c.Next() }
	}
	expected := []byte(token)
	return func(c *gin.Context) {
		presented := extractBearerToken(c)
		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header.
// Returns empty string if the header is missing or malformed. The
// "Bearer" prefix is case-insensitive per RFC 7235.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
