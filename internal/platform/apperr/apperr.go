// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the snippet service.

It provides a rich error type that bridges the gap between low-level storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-safe message.
  - Taxonomy: One constructor per failure kind the service can surface
    (validation, duplicate identity, invalid credentials, unauthenticated,
    forbidden, not found, internal).
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be an [AppError] (or wrap one)
so that handlers can decide between flash-and-redirect, re-render, and the
generic failure page without inspecting strings.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the snippet service.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "FORBIDDEN").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Snippet") // Returns "Snippet not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthenticated creates the error returned when an anonymous session asks
// for a protected action.
//
// It renders as a 404 so that anonymous callers cannot tell protected routes
// or resources apart from ones that do not exist.
func Unauthenticated() *AppError {
	return &AppError{
		Code:       CodeUnauthenticated,
		Message:    "Not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidCredentials creates the single, generic login failure.
//
// The message is identical whether the username is unknown or the password is
// wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    "Invalid username or password.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// DuplicateUsername creates a 409 [AppError] attributed to the username field.
func DuplicateUsername() *AppError {
	return &AppError{
		Code:       CodeDuplicateUsername,
		Message:    "Username is already taken",
		HTTPStatus: http.StatusConflict,
		Details:    []FieldError{{Field: "username", Message: "This username is already taken"}},
	}
}

// DuplicateEmail creates a 409 [AppError] attributed to the email field.
func DuplicateEmail() *AppError {
	return &AppError{
		Code:       CodeDuplicateEmail,
		Message:    "Email is already registered",
		HTTPStatus: http.StatusConflict,
		Details:    []FieldError{{Field: "email", Message: "This email is already registered"}},
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// IsNotFound reports whether err is a NOT_FOUND [AppError].
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsDomain reports whether err is a client-facing failure (4xx) as opposed to
// an infrastructure failure that must bypass flash handling.
func IsDomain(err error) bool {
	ae := As(err)
	return ae != nil && ae.HTTPStatus < http.StatusInternalServerError
}
