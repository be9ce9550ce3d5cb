// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/snipbin/internal/memory"
	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/respond"
	"github.com/taibuivan/snipbin/internal/platform/sec"
	"github.com/taibuivan/snipbin/internal/users/account"
	"github.com/taibuivan/snipbin/internal/users/session"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	signer, err := sec.NewCookieSigner("0123456789abcdef0123456789abcdef", "snipbin")
	require.NoError(t, err)

	sessions := session.NewManager(memory.NewSessionStore(), signer, session.CookieOptions{Name: "sid", TTL: time.Hour})

	router := chi.NewRouter()
	account.NewHandler(account.NewService(memory.NewAccountStore(), hasher), sessions).RegisterRoutes(router)
	return router
}

func postForm(router http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_RegisterThenFlashOnLoginPage(t *testing.T) {
	router := newRouter(t)

	recorder := postForm(router, "/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"password1"},
	})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)

	request := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	page := httptest.NewRecorder()
	router.ServeHTTP(page, request)
	require.Equal(t, http.StatusOK, page.Code)

	var envelope struct {
		Flash session.Flash `json:"flash"`
	}
	require.NoError(t, json.NewDecoder(page.Body).Decode(&envelope))
	assert.Equal(t, session.FlashSuccess, envelope.Flash.Kind)
	assert.Equal(t, account.MessageRegistered, envelope.Flash.Text)
}

func TestHandler_RegisterRejectsDuplicateWithoutEchoingPassword(t *testing.T) {
	router := newRouter(t)
	values := url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"hunter2-secret"},
	}

	require.Equal(t, http.StatusSeeOther, postForm(router, "/register", values).Code)

	recorder := postForm(router, "/register", values)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "hunter2-secret")

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, apperr.CodeDuplicateUsername, envelope.Code)
}

func TestHandler_LoginSetsFreshCookie(t *testing.T) {
	router := newRouter(t)
	require.Equal(t, http.StatusSeeOther, postForm(router, "/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"password1"},
	}).Code)

	recorder := postForm(router, "/login", url.Values{"username": {"alice"}, "password": {"password1"}})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "sid" {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)

	logout := postForm(router, "/logout", nil, sessionCookie)
	assert.Equal(t, http.StatusSeeOther, logout.Code)

	// The retired cookie no longer identifies anyone.
	again := postForm(router, "/logout", nil, sessionCookie)
	assert.Equal(t, http.StatusNotFound, again.Code)
}
