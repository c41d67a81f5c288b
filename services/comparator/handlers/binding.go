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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/ContentCompare/pkg/validation"
)

// Registers the "locatortype" binding tag used by CompareRequest.
// Runs at import time so every consumer of this package (router,
// tests) gets the tag without extra setup.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("locatortype", func(fl validator.FieldLevel) bool {
			return validation.ValidateLocatorType(fl.Field().String())
		})
	}
}
