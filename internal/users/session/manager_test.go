// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snipbin/internal/memory"
	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/sec"
	"github.com/taibuivan/snipbin/internal/users/session"
)

const (
	cookieName = "snipbin_session"
	testSecret = "0123456789abcdef0123456789abcdef"
)

var alice = session.Identity{UserID: "u-alice", Username: "alice"}

func newManager(t *testing.T, store session.Store) *session.Manager {
	t.Helper()
	signer, err := sec.NewCookieSigner(testSecret, "snipbin")
	require.NoError(t, err)
	return session.NewManager(store, signer, session.CookieOptions{Name: cookieName, TTL: time.Hour})
}

// sessionCookie returns the last session cookie set on recorder.
func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == cookieName {
			found = cookie
		}
	}
	require.NotNil(t, found, "no session cookie set")
	return found
}

// load resolves the session for a request carrying cookie (may be nil).
func load(t *testing.T, manager *session.Manager, cookie *http.Cookie) *session.Session {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}
	current, err := manager.Load(context.Background(), httptest.NewRecorder(), request)
	require.NoError(t, err)
	return current
}

func TestManager_LoadWithoutCookieIsAnonymous(t *testing.T) {
	manager := newManager(t, memory.NewSessionStore())

	current := load(t, manager, nil)

	assert.Equal(t, session.StateAnonymous, current.State())
	assert.Empty(t, current.Token())
	assert.Nil(t, current.Identity())
}

func TestManager_LoginRegeneratesToken(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, memory.NewSessionStore())

	// An anonymous session that already has a token (because of a flash).
	anonymous := session.New()
	recorder := httptest.NewRecorder()
	require.NoError(t, manager.SetFlash(ctx, recorder, anonymous, session.FlashDanger, "Invalid username or password."))
	preLoginCookie := sessionCookie(t, recorder)
	preLoginToken := anonymous.Token()
	require.NotEmpty(t, preLoginToken)

	recorder = httptest.NewRecorder()
	authenticated, err := manager.Login(ctx, recorder, load(t, manager, preLoginCookie), alice)
	require.NoError(t, err)

	assert.Equal(t, session.StateAuthenticated, authenticated.State())
	assert.NotEqual(t, preLoginToken, authenticated.Token())

	cookie := sessionCookie(t, recorder)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	// The new cookie resolves to alice.
	assert.Equal(t, "alice", load(t, manager, cookie).Username())

	// The pre-login token no longer resolves.
	stale := load(t, manager, preLoginCookie)
	assert.False(t, stale.IsAuthenticated())
	assert.Empty(t, stale.Token())
}

func TestManager_LoginTerminatesPreviousSession(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, memory.NewSessionStore())

	previous := session.New()
	_, err := manager.Login(ctx, httptest.NewRecorder(), previous, alice)
	require.NoError(t, err)

	assert.Equal(t, session.StateTerminated, previous.State())
	_, err = manager.Login(ctx, httptest.NewRecorder(), previous, alice)
	assert.ErrorIs(t, err, session.ErrTerminated)
}

type failingStore struct {
	session.Store
}

func (failingStore) Rotate(context.Context, string, string, session.Record, time.Duration) error {
	return errors.New("connection reset")
}

func TestManager_LoginAbortsOnStoreFailure(t *testing.T) {
	manager := newManager(t, failingStore{Store: memory.NewSessionStore()})

	current := session.New()
	recorder := httptest.NewRecorder()
	next, err := manager.Login(context.Background(), recorder, current, alice)

	require.Error(t, err)
	assert.Nil(t, next)
	assert.Equal(t, session.StateAnonymous, current.State())
	assert.Empty(t, recorder.Result().Cookies())
}

func TestManager_LogoutWithoutIdentity(t *testing.T) {
	manager := newManager(t, memory.NewSessionStore())

	_, err := manager.Logout(context.Background(), httptest.NewRecorder(), session.New())

	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
}

func TestManager_LogoutDestroysSession(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, memory.NewSessionStore())

	recorder := httptest.NewRecorder()
	_, err := manager.Login(ctx, recorder, session.New(), alice)
	require.NoError(t, err)
	loginCookie := sessionCookie(t, recorder)

	current := load(t, manager, loginCookie)
	require.True(t, current.IsAuthenticated())

	recorder = httptest.NewRecorder()
	next, err := manager.Logout(ctx, recorder, current)
	require.NoError(t, err)

	assert.Equal(t, session.StateTerminated, current.State())
	assert.False(t, next.IsAuthenticated())
	assert.NotEmpty(t, next.Token())

	// The logged-out token now resolves to an anonymous session.
	assert.False(t, load(t, manager, loginCookie).IsAuthenticated())

	// The replacement cookie carries the fresh anonymous session.
	fresh := load(t, manager, sessionCookie(t, recorder))
	assert.Equal(t, next.Token(), fresh.Token())
}

func TestManager_FlashIsConsumedOnce(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, memory.NewSessionStore())

	current := session.New()
	recorder := httptest.NewRecorder()
	require.NoError(t, manager.SetFlash(ctx, recorder, current, session.FlashSuccess, "The snippet was created successfully"))

	next := load(t, manager, sessionCookie(t, recorder))

	flash, err := manager.ConsumeFlash(ctx, next)
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, session.FlashSuccess, flash.Kind)

	flash, err = manager.ConsumeFlash(ctx, next)
	require.NoError(t, err)
	assert.Nil(t, flash)
}

func TestManager_ForgedCookieIsAnonymous(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	manager := newManager(t, store)

	recorder := httptest.NewRecorder()
	_, err := manager.Login(ctx, recorder, session.New(), alice)
	require.NoError(t, err)
	genuine := sessionCookie(t, recorder)

	otherSigner, err := sec.NewCookieSigner("ffffffffffffffffffffffffffffffff", "snipbin")
	require.NoError(t, err)
	signer, err := sec.NewCookieSigner(testSecret, "snipbin")
	require.NoError(t, err)
	raw, err := signer.Verify(genuine.Value)
	require.NoError(t, err)
	forgedValue, err := otherSigner.Sign(raw, time.Hour)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: cookieName, Value: forgedValue})
	recorder = httptest.NewRecorder()

	current, err := manager.Load(ctx, recorder, request)
	require.NoError(t, err)
	assert.False(t, current.IsAuthenticated())
	assert.Equal(t, -1, sessionCookie(t, recorder).MaxAge)
}

func TestManager_RedisBackedLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	manager := newManager(t, store)

	recorder := httptest.NewRecorder()
	authenticated, err := manager.Login(ctx, recorder, session.New(), alice)
	require.NoError(t, err)

	current := load(t, manager, sessionCookie(t, recorder))
	assert.Equal(t, authenticated.Token(), current.Token())
	assert.Equal(t, "u-alice", current.Identity().UserID)
}
