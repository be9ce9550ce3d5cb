// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/snipbin/internal/api"
	"github.com/taibuivan/snipbin/internal/memory"
	"github.com/taibuivan/snipbin/internal/platform/config"
	"github.com/taibuivan/snipbin/internal/platform/sec"
	"github.com/taibuivan/snipbin/internal/snippet"
	"github.com/taibuivan/snipbin/internal/users/account"
	"github.com/taibuivan/snipbin/internal/users/session"
)

func newTestServer(t *testing.T, checks ...api.Check) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	signer, err := sec.NewCookieSigner("0123456789abcdef0123456789abcdef", "snipbin")
	require.NoError(t, err)
	sessions := session.NewManager(memory.NewSessionStore(), signer, session.CookieOptions{Name: "snipbin_session", TTL: time.Hour})
	snippets := snippet.NewService(memory.NewSnippetStore())

	liveness, readiness := api.NewHealthHandlers(checks, logger)
	cfg := &config.Config{
		ServerPort:     "0",
		Environment:    "production",
		AllowedOrigins: []string{"https://snip.example"},
	}

	server := api.NewServer(cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(account.NewService(memory.NewAccountStore(), hasher), sessions),
		Snippet:   snippet.NewHandler(snippets, snippet.NewGuard(snippets), sessions),
	})
	return server.Handler()
}

func serve(handler http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestServer_Health(t *testing.T) {
	handler := newTestServer(t)

	recorder := serve(handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = serve(handler, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestServer_ReadinessDegraded(t *testing.T) {
	handler := newTestServer(t,
		api.Check{Name: "postgres", Ping: func(context.Context) error { return nil }},
		api.Check{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: connection refused") }},
	)

	recorder := serve(handler, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].OK)
	assert.False(t, body.Data.Checks[1].OK)
}

func TestServer_RoutesSite(t *testing.T) {
	handler := newTestServer(t)

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet, "/login", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(handler, http.MethodGet, "/create", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(handler, http.MethodGet, "/no/such/page", nil).Code)
}

func TestServer_CORS(t *testing.T) {
	handler := newTestServer(t)

	allowed := serve(handler, http.MethodGet, "/", map[string]string{"Origin": "https://snip.example"})
	assert.Equal(t, "https://snip.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := serve(handler, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
