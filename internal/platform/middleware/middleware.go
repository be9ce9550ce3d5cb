// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP chain wrapped around every page.

Standard Stack:

  - Trace: RequestID assigns or sanitizes the correlation ID.
  - Log: StructuredLogger emits one slog line per request.
  - Safe: PanicRecovery turns a handler panic into a 500 page.
  - Guard: CORS answers only for configured origins.

Sessions are not resolved here. Each handler loads its own session so the
authorization decision stays visible next to the action it protects.
*/
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/ctxutil"
	"github.com/taibuivan/snipbin/internal/platform/respond"
	"github.com/taibuivan/snipbin/pkg/uuid"
)

// maxRequestIDLength bounds a client-supplied X-Request-ID before it reaches the logs.
const maxRequestIDLength = 64

// # Request Tracing

// RequestID attaches a correlation ID to every request.
//
// A client-supplied X-Request-ID is kept only if it is short and made of
// printable ASCII; otherwise a fresh UUIDv7 replaces it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !acceptableRequestID(requestID) {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}

// # Activity Logging

// statusRecorder remembers the status code and body size written downstream.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(body []byte) (int, error) {
	n, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

// StructuredLogger injects a request-scoped logger into the context and
// logs one "http_request_finished" line per request.
//
// Health probes are logged at debug level so they do not drown the access log.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			requestLogger.Log(ctx, levelFor(request, recorder.status), "http_request_finished",
				slog.Int("status", recorder.status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			)
		})
	}
}

func levelFor(request *http.Request, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case request.URL.Path == "/health" || request.URL.Path == "/ready":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// # Reliability & Safety

// PanicRecovery converts a handler panic into a logged 500 error page.
//
// [http.ErrAbortHandler] is re-raised so net/http can abort the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				stackTrace := make([]byte, 4096)
				length := runtime.Stack(stackTrace, false)

				reqLogger := ctxutil.GetLogger(request.Context())
				if reqLogger == slog.Default() {
					reqLogger = logger
				}
				reqLogger.ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// CORSConfig defines the behavior needed by the CORS middleware.
type CORSConfig interface {
	IsDevelopment() bool
}

// CORS handles Cross-Origin Resource Sharing.
//
// Development mode reflects any origin. Otherwise only origins listed in
// allowedOrigins receive CORS headers. Credentials are allowed so that the
// session cookie travels with form posts from those origins.
func CORS(cfg CORSConfig, allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			allowed := cfg.IsDevelopment() || slices.Contains(allowedOrigins, origin)
			if allowed {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID)
			}

			isPreflight := request.Method == http.MethodOptions &&
				request.Header.Get("Access-Control-Request-Method") != ""
			if !isPreflight {
				next.ServeHTTP(writer, request)
				return
			}

			if allowed {
				header.Set("Access-Control-Allow-Methods", "GET, POST")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, "+constants.HeaderXRequestID)
				header.Set("Access-Control-Max-Age", "300")
			}
			writer.WriteHeader(http.StatusNoContent)
		})
	}
}

// # Middleware Helpers

// RealIP returns the client address, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the connection's remote address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
