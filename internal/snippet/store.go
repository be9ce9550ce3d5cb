// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"context"

	"github.com/taibuivan/snipbin/pkg/pagination"
)

// # Snippet Data Access

// Repository defines the data access contract for snippets.
type Repository interface {

	// Create persists a new snippet.
	Create(context context.Context, snippet *Snippet) error

	/*
		FindByID returns the snippet with the given id.

		Returns:
		  - *Snippet: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Snippet, error)

	/*
		List returns one page of snippets matching filter, newest first
		(created_at DESC, id DESC), and the total number of matches.
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Snippet, int, error)

	/*
		Update overwrites the editable fields of the snippet whose id AND owner
		match snippet.ID and snippet.Owner.

		Returns:
		  - error: apperr.NotFound when no row matched both
	*/
	Update(context context.Context, snippet *Snippet) error

	/*
		Delete removes the snippet whose id AND owner match.

		Returns:
		  - error: apperr.NotFound when no row matched both
	*/
	Delete(context context.Context, id, owner string) error
}
