// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements server-side browser sessions.

A session is an opaque random token, carried in a signed cookie, that keys an
entry in the session store. The entry holds the signed-in identity (if any);
a one-shot flash message is stored beside it.

# Lifecycle

	Anonymous --Login--> Authenticated --Logout--> Terminated (+ fresh Anonymous)

Login always issues a new token and removes the previous one in the same
store transaction. Handlers load the [Session] explicitly with
[Manager.Load] and pass it back to the [Manager] for every mutation; nothing
is stashed in the request context.
*/
package session

import "time"

// # State

// State is the lifecycle position of a [Session].
type State int

const (
	// StateAnonymous has no identity. It may read, log in, and register.
	StateAnonymous State = iota
	// StateAuthenticated carries an identity set by a successful login.
	StateAuthenticated
	// StateTerminated was replaced by login or destroyed by logout.
	StateTerminated
)

// String implements fmt.Stringer.
func (state State) String() string {
	switch state {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// # Domain Entities

// Identity is the signed-in account as seen by the rest of the application.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a message shown exactly once, on the next rendered page.
type Flash struct {
	Kind string `json:"type"`
	Text string `json:"text"`
}

// Record is the persisted form of a session, keyed by the hashed token.
type Record struct {
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the per-request view of a browser session.
//
// The zero value is not usable; call [New] or [Restore].
type Session struct {
	token     string
	identity  *Identity
	createdAt time.Time
	state     State
}

// New returns an anonymous session that has not been persisted yet.
//
// A token is minted lazily, the first time something must be stored.
func New() *Session {
	return &Session{createdAt: time.Now(), state: StateAnonymous}
}

// Restore rebuilds a session from its token and stored record.
func Restore(token string, record Record) *Session {
	session := &Session{token: token, createdAt: record.CreatedAt, state: StateAnonymous}
	if record.UserID != "" {
		session.identity = &Identity{UserID: record.UserID, Username: record.Username}
		session.state = StateAuthenticated
	}
	return session
}

// Token returns the raw session token, or "" if none has been issued.
// It must never be logged.
func (session *Session) Token() string { return session.token }

// State returns the lifecycle state.
func (session *Session) State() State { return session.state }

// CreatedAt returns when the session (or its current token) was created.
func (session *Session) CreatedAt() time.Time { return session.createdAt }

// Identity returns the signed-in identity, or nil for anonymous sessions.
func (session *Session) Identity() *Identity {
	if session == nil || session.state != StateAuthenticated {
		return nil
	}
	return session.identity
}

// IsAuthenticated reports whether the session carries an identity.
func (session *Session) IsAuthenticated() bool {
	return session.Identity() != nil
}

// Username returns the signed-in username, or "".
func (session *Session) Username() string {
	if identity := session.Identity(); identity != nil {
		return identity.Username
	}
	return ""
}

// record converts the session to its persisted form.
func (session *Session) record() Record {
	record := Record{CreatedAt: session.createdAt}
	if session.identity != nil {
		record.UserID = session.identity.UserID
		record.Username = session.identity.Username
	}
	return record
}

// terminate marks the session as no longer usable.
func (session *Session) terminate() {
	session.identity = nil
	session.state = StateTerminated
}
