// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/models"
	"github.com/maisonmai/analytics/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidation         = validation.ErrorCode
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `"` + strconv.FormatUint(uint64(hash), 16) + `"`
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now().UTC()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error response. err is logged, never returned to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(code)).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondAPIError(w, status, &models.APIError{Code: code, Message: message})
}

// respondValidationError sends a 400 with the validator's field details.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	logging.Ctx(r.Context()).Debug().
		Str("path", sanitizeLogValue(r.URL.Path)).
		Str("error", sanitizeLogValue(verr.Error())).
		Msg("Request rejected by validation")

	respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: apiErr,
	})
}
