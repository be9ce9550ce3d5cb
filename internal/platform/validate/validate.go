// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Reporting
//
// Only the first failing rule of each field is reported, so a blank
// username yields "required" and not also "too short" and "letters only".
// Rules are checked in the order they are chained.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
)

var (
	alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// ErrInvalidBody is returned when the request body cannot be decoded.
	ErrInvalidBody = apperr.ValidationError("Invalid request body")
)

// Validator collects field-level validation errors.
//
// A Validator is single-use and not safe for concurrent use.
type Validator struct {
	errs   []apperr.FieldError
	failed map[string]bool
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails if value has more than max characters (runes, not bytes).
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// MinLen fails if value has fewer than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) < min, fmt.Sprintf("Minimum %d characters", min))
}

// Alphanumeric fails on anything other than ASCII letters and digits.
// An empty value passes; pair it with [Validator.Required].
func (v *Validator) Alphanumeric(field, value string) *Validator {
	return v.check(field, value != "" && !alphanumericPattern.MatchString(value), "Only letters and digits are allowed")
}

// Email fails unless value is a bare address with a dotted domain.
//
// Display-name forms such as "Alice <alice@example.com>" are rejected: the
// stored value must be the address itself.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	invalid := err != nil || address.Address != value
	if !invalid {
		_, domain, _ := strings.Cut(value, "@")
		invalid = !strings.Contains(domain, ".")
	}
	return v.check(field, invalid, "Must be a valid email address")
}

// Err returns a VALIDATION_ERROR carrying every recorded failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) check(field string, failed bool, message string) *Validator {
	if !failed || v.failed[field] {
		return v
	}
	if v.failed == nil {
		v.failed = make(map[string]bool)
	}
	v.failed[field] = true
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	return v
}
