// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"context"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/users/session"
)

// Finder loads a snippet by id.
type Finder interface {
	Get(context context.Context, id string) (*Snippet, error)
}

// Guard decides whether a session may perform a protected snippet action.
type Guard struct {
	snippets Finder
}

// NewGuard constructs a new [Guard].
func NewGuard(snippets Finder) *Guard {
	return &Guard{snippets: snippets}
}

/*
Authorize checks current against the snippet resourceID.

Description: With an empty resourceID only authentication is required (for
example, creating a snippet). Otherwise the snippet is loaded fresh on every
call and its owner compared with the session's username.

Parameters:
  - context: context.Context
  - current: *session.Session
  - resourceID: string (may be empty)

Returns:
  - *Snippet: The target snippet when resourceID was given, else nil
  - error: apperr.Unauthenticated, apperr.NotFound, apperr.Forbidden, or load failures
*/
func (guard *Guard) Authorize(context context.Context, current *session.Session, resourceID string) (*Snippet, error) {
	if !current.IsAuthenticated() {
		return nil, apperr.Unauthenticated()
	}

	if resourceID == "" {
		return nil, nil
	}

	snippet, err := guard.snippets.Get(context, resourceID)
	if err != nil {
		return nil, err
	}

	if !IsOwner(current, snippet) {
		return nil, apperr.Forbidden("You do not own this snippet")
	}

	return snippet, nil
}

// IsOwner reports whether current is signed in as the owner of snippet.
func IsOwner(current *session.Session, snippet *Snippet) bool {
	if snippet == nil || !current.IsAuthenticated() {
		return false
	}
	return current.Username() == snippet.Owner
}
