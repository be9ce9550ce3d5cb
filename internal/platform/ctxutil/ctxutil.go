// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context]: the
// correlation ID and the request-scoped logger.
//
// Keys are unexported struct types, so no other package can read or
// overwrite them. The session is not stored here; handlers load it
// explicitly from the session manager.
package ctxutil

import (
	"context"
	"log/slog"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID value to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the correlation ID of ctx, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// # Structured Logging

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the logger attached to ctx, falling back to
// [slog.Default] so callers never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
