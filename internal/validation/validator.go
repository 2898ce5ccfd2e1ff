// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package validation wraps go-playground/validator v10 with a shared
// singleton instance. It checks configuration at load time, warehouse
// rows at the fetch boundary and explorer query parameters, so later
// layers can rely on the tagged constraints (non-negative counts, ratings
// in 0..100, ISO dates).
//
//	type PublisherStats struct {
//	    TotalGames int64    `validate:"gte=0"`
//	    AvgRating  *float64 `validate:"omitempty,gte=0,lte=100"`
//	}
//
//	if err := validation.ValidateStruct(&row); err != nil {
//	    return fmt.Errorf("row %d: %w", i, err)
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used across the warehouse and API.
const DateLayout = "2006-01-02"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one failed constraint.
type ValidationError struct {
	field string
	tag   string
	param string
	value any
}

// Field is the Go struct field name, e.g. "MinRating".
func (e ValidationError) Field() string { return e.field }

// Tag is the failed rule, e.g. "lte".
func (e ValidationError) Tag() string { return e.tag }

// Param is the rule argument, e.g. "100" for lte=100.
func (e ValidationError) Param() string { return e.param }

// Value is the rejected value.
func (e ValidationError) Value() any { return e.value }

func (e ValidationError) Error() string {
	f, p := e.field, e.param
	switch e.tag {
	case "required":
		return f + " is required"
	case "isodate":
		return f + " must be a date in YYYY-MM-DD format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, p)
	case "gte", "min":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, p)
	case "lte", "max":
		return fmt.Sprintf("%s must be less than or equal to %s", f, p)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, p)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", f, p)
	default:
		return fmt.Sprintf("%s failed %s validation", f, e.tag)
	}
}

// FieldErrors collects every failed constraint of one struct.
type FieldErrors struct {
	errors []ValidationError
}

// Errors returns the individual failures in field order.
func (ve *FieldErrors) Errors() []ValidationError {
	return ve.errors
}

func (ve *FieldErrors) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the shared validator with the isodate rule registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct checks s against its validate tags. It returns nil when
// every constraint holds.
func ValidateStruct(s any) *FieldErrors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		// Not a struct, or a nil pointer.
		return &FieldErrors{errors: []ValidationError{{field: fmt.Sprintf("%T", s), tag: "struct"}}}
	}

	out := make([]ValidationError, len(fes))
	for i, fe := range fes {
		out[i] = ValidationError{
			field: fe.Field(),
			tag:   fe.Tag(),
			param: fe.Param(),
			value: fe.Value(),
		}
	}
	return &FieldErrors{errors: out}
}
