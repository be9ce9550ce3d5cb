// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"time"

	"github.com/taibuivan/snipbin/internal/users/session"
	"github.com/taibuivan/snipbin/pkg/slice"
	"github.com/taibuivan/snipbin/pkg/tags"
)

// View is a snippet as rendered for a particular viewer.
type View struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	TagLine     string    `json:"tag_line"`
	Content     string    `json:"snippet"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Creator is true when the viewer owns the snippet and may edit it.
	Creator bool `json:"creator"`
}

// NewView renders snippet for the viewer current.
func NewView(current *session.Session, snippet *Snippet) View {
	return View{
		ID:          snippet.ID,
		User:        snippet.Owner,
		Title:       snippet.Title,
		Language:    snippet.Language,
		Description: snippet.Description,
		Tags:        snippet.Tags,
		TagLine:     tags.Join(snippet.Tags),
		Content:     snippet.Content,
		CreatedAt:   snippet.CreatedAt,
		UpdatedAt:   snippet.UpdatedAt,
		Creator:     IsOwner(current, snippet),
	}
}

// NewViews renders a listing for the viewer current.
func NewViews(current *session.Session, snippets []*Snippet) []View {
	views := slice.Map(snippets, func(snippet *Snippet) View {
		return NewView(current, snippet)
	})
	if views == nil {
		views = []View{}
	}
	return views
}
