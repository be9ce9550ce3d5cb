// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// # Session Data Access

// Store persists session records and flash messages.
//
// Every id is the SHA-256 of a session token, never the token itself.
type Store interface {

	/*
		Get returns the record for id.

		Returns:
		  - *Record: Stored record
		  - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, id string) (*Record, error)

	// Save creates or replaces the record for id with the given TTL.
	Save(context context.Context, id string, record Record, ttl time.Duration) error

	// Delete removes the record for id together with any pending flash.
	Delete(context context.Context, id string) error

	/*
		Rotate stores record under newID and deletes oldID (and its flash) in a
		single atomic step. oldID may be empty when there is nothing to remove.

		Either both effects happen or neither does.
	*/
	Rotate(context context.Context, oldID, newID string, record Record, ttl time.Duration) error

	// SetFlash replaces the pending flash for id.
	SetFlash(context context.Context, id string, flash Flash, ttl time.Duration) error

	/*
		TakeFlash atomically reads and removes the pending flash for id.

		Returns:
		  - *Flash: The flash, or nil if none is pending
		  - error: Store failures only
	*/
	TakeFlash(context context.Context, id string) (*Flash, error)
}
