// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/maisonmai/analytics/internal/models"
)

// ErrorCode is the API error code for every validation failure.
const ErrorCode = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one rejected query parameter.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Message string
}

// RequestValidationError collects the field errors of one request.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// ToAPIError converts the error to the API error envelope. A single failure
// reports field, tag and value in Details; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	switch len(ve.Fields) {
	case 0:
		return &models.APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		f := ve.Fields[0]
		return &models.APIError{
			Code:    ErrorCode,
			Message: f.Message,
			Details: map[string]any{
				"field": f.Field,
				"tag":   f.Tag,
				"value": f.Value,
			},
		}
	}

	fields := make([]map[string]any, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = map[string]any{
			"field":   f.Field,
			"tag":     f.Tag,
			"message": f.Message,
		}
	}
	return &models.APIError{
		Code:    ErrorCode,
		Message: ve.Error(),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator instance. Error field names are
// taken from the `query` tag when present.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("query"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the tag rules on s. It returns nil when s is valid.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return &RequestValidationError{Fields: out}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
