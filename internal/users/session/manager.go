// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/ctxutil"
	"github.com/taibuivan/snipbin/internal/platform/sec"
)

// ErrTerminated is returned when a replaced or destroyed session is reused.
var ErrTerminated = errors.New("session: terminated")

// Manager implements the session lifecycle on top of a [Store].
//
// # Review Process
//
// Login regeneration and logout are the anti-fixation guarantees of the
// application. Changes here must keep "new token stored, old token gone"
// a single store operation.
type Manager struct {
	store  Store
	cookie cookieJar
	ttl    time.Duration
}

// NewManager constructs a new [Manager].
func NewManager(store Store, signer *sec.CookieSigner, options CookieOptions) *Manager {
	if options.TTL <= 0 {
		options.TTL = constants.DefaultSessionTTL
	}
	return &Manager{
		store:  store,
		cookie: cookieJar{signer: signer, options: options},
		ttl:    options.TTL,
	}
}

/*
Load resolves the request's session.

Description: A missing, forged, expired, or logged-out cookie yields a fresh
anonymous session (and a stale cookie is cleared). Only a store failure is an
error.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - request: *http.Request

Returns:
  - *Session: The current session, never nil on success
  - error: Store failures
*/
func (manager *Manager) Load(context context.Context, writer http.ResponseWriter, request *http.Request) (*Session, error) {
	token, present, ok := manager.cookie.read(request)
	if !ok {
		if present {
			ctxutil.GetLogger(context).DebugContext(context, "session_cookie_rejected")
			manager.cookie.clear(writer)
		}
		return New(), nil
	}

	record, err := manager.store.Get(context, sec.HashToken(token))
	if err != nil {
		if apperr.IsNotFound(err) {
			manager.cookie.clear(writer)
			return New(), nil
		}
		return nil, fmt.Errorf("session_load_failed: %w", err)
	}

	return Restore(token, *record), nil
}

/*
Login binds identity to a brand new token and retires the current one.

Description: The new record is written and the old one deleted in one
atomic store call. On any failure the login is aborted and the caller's
session is left untouched; the pre-login token is never promoted.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - current: *Session
  - identity: Identity

Returns:
  - *Session: The authenticated session
  - error: Token generation, store, or cookie failures
*/
func (manager *Manager) Login(context context.Context, writer http.ResponseWriter, current *Session, identity Identity) (*Session, error) {
	if current.state == StateTerminated {
		return nil, ErrTerminated
	}

	token, err := sec.GenerateSecureToken(constants.SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("session_token_generate_failed: %w", err)
	}

	next := &Session{
		token:     token,
		identity:  &identity,
		createdAt: time.Now(),
		state:     StateAuthenticated,
	}

	previousID := ""
	if current.token != "" {
		previousID = sec.HashToken(current.token)
	}

	if err := manager.store.Rotate(context, previousID, sec.HashToken(token), next.record(), manager.ttl); err != nil {
		return nil, fmt.Errorf("session_regenerate_failed: %w", err)
	}

	if err := manager.cookie.write(writer, token); err != nil {
		return nil, err
	}

	current.terminate()

	ctxutil.GetLogger(context).InfoContext(context, "session_regenerated",
		slog.String("user_id", identity.UserID),
	)

	return next, nil
}

/*
Logout destroys an authenticated session and issues a fresh anonymous one.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - current: *Session

Returns:
  - *Session: New anonymous session (already persisted, cookie set)
  - error: apperr.Unauthenticated when there is nobody to log out, or store failures
*/
func (manager *Manager) Logout(context context.Context, writer http.ResponseWriter, current *Session) (*Session, error) {
	identity := current.Identity()
	if identity == nil {
		return nil, apperr.Unauthenticated()
	}

	if err := manager.store.Delete(context, sec.HashToken(current.token)); err != nil {
		return nil, fmt.Errorf("session_destroy_failed: %w", err)
	}
	current.terminate()

	ctxutil.GetLogger(context).InfoContext(context, "session_destroyed",
		slog.String("user_id", identity.UserID),
	)

	next := New()
	if err := manager.issue(context, writer, next); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "session_reissue_failed", slog.Any("error", err))
		manager.cookie.clear(writer)
	}

	return next, nil
}

/*
SetFlash queues a message for the next rendered page of this session.

Description: An anonymous session without a token is persisted first, so a
flash can survive the redirect that follows.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - current: *Session
  - kind: string (FlashSuccess or FlashDanger)
  - text: string
*/
func (manager *Manager) SetFlash(context context.Context, writer http.ResponseWriter, current *Session, kind, text string) error {
	if current.state == StateTerminated {
		return ErrTerminated
	}

	if current.token == "" {
		if err := manager.issue(context, writer, current); err != nil {
			return err
		}
	}

	flash := Flash{Kind: kind, Text: text}
	if err := manager.store.SetFlash(context, sec.HashToken(current.token), flash, manager.ttl); err != nil {
		return fmt.Errorf("session_flash_set_failed: %w", err)
	}

	return nil
}

/*
ConsumeFlash returns the pending flash and removes it.

Returns:
  - *Flash: The flash, or nil if none is pending
  - error: Store failures
*/
func (manager *Manager) ConsumeFlash(context context.Context, current *Session) (*Flash, error) {
	if current.token == "" || current.state == StateTerminated {
		return nil, nil
	}

	flash, err := manager.store.TakeFlash(context, sec.HashToken(current.token))
	if err != nil {
		return nil, fmt.Errorf("session_flash_consume_failed: %w", err)
	}

	return flash, nil
}

// issue mints a token for an unpersisted session, stores it, and sets the cookie.
func (manager *Manager) issue(context context.Context, writer http.ResponseWriter, current *Session) error {
	token, err := sec.GenerateSecureToken(constants.SessionTokenLength)
	if err != nil {
		return fmt.Errorf("session_token_generate_failed: %w", err)
	}

	if err := manager.store.Save(context, sec.HashToken(token), current.record(), manager.ttl); err != nil {
		return fmt.Errorf("session_create_failed: %w", err)
	}

	if err := manager.cookie.write(writer, token); err != nil {
		return err
	}

	current.token = token
	return nil
}
