// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all handlers.
//
// # Architecture
//
// Every response leaves the service through one of three shapes:
//
//   - View: a rendered page, carrying the page data plus the consumed flash
//     and the current user (what a template layout would read).
//   - Form error: a 4xx re-render of a form with field details and the
//     submitted input.
//   - Redirect: a 303 See Other after a successful or flashed write.
//
// Failures that are not attributable to the client always use [Error], which
// hides the cause and logs it.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/ctxutil"
	"github.com/taibuivan/snipbin/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for plain data responses (health probes).
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ViewEnvelope is the JSON envelope for a rendered page.
//
// Flash and User are null when absent.
type ViewEnvelope struct {
	Data  interface{}      `json:"data"`
	Meta  *pagination.Meta `json:"meta,omitempty"`
	Flash interface{}      `json:"flash"`
	User  interface{}      `json:"user"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`

	// Input echoes the submitted form fields when a form is re-rendered.
	Input interface{} `json:"input,omitempty"`
	User  interface{} `json:"user,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// View writes a 200 OK rendered page.
func View(writer http.ResponseWriter, envelope ViewEnvelope) {
	writer.Header().Set("Cache-Control", "no-store")
	JSON(writer, http.StatusOK, envelope)
}

// SeeOther redirects the browser to location with a 303, so that a refresh
// after a form post does not resubmit it.
func SeeOther(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// Form re-renders a form after a client-attributable failure.
//
// input must already be stripped of secrets; it is echoed back verbatim.
func Form(writer http.ResponseWriter, request *http.Request, err error, input, user interface{}) {
	appError := apperr.As(err)
	if appError == nil || !apperr.IsDomain(err) {
		Error(writer, request, err)
		return
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
		Input:   input,
		User:    user,
	})
}

// Error converts any Go error into a standardized JSON error page.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
