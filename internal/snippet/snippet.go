// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package snippet implements owner-tagged snippets and the ownership guard that
protects them.

# Architecture

  - Service: Create, read, list, update and delete use cases.
  - Guard: Decides whether a session may mutate a given snippet.
  - Repository: Persistence contract. Update and Delete always match on
    both id and owner, so ownership is re-checked by the storage itself.
  - Handler: Listing, detail and form pages.

The owner of a snippet is the creator's username at creation time and is
never taken from client input.
*/
package snippet

import (
	"net/url"
	"time"
)

// # Domain Entities

// Snippet is a piece of text or code shared by an account.
type Snippet struct {
	ID          string    `json:"id"`
	Owner       string    `json:"user"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"snippet"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input holds the client-editable fields of a snippet.
//
// Tags is the raw whitespace-separated tag line. There is deliberately no
// owner field.
type Input struct {
	Title       string `json:"title"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Content     string `json:"snippet"`
}

// BindForm implements requestutil.FormBinder.
func (input *Input) BindForm(values url.Values) {
	input.Title = values.Get(FieldTitle)
	input.Language = values.Get(FieldLanguage)
	input.Description = values.Get(FieldDescription)
	input.Tags = values.Get(FieldTags)
	input.Content = values.Get(FieldContent)
}

// Filter narrows a listing. Empty fields do not filter.
type Filter struct {
	Owner string
	Tag   string
}

// # Field Identifiers

// Form field names, shared by validation and form binding.
const (
	FieldTitle       = "title"
	FieldLanguage    = "language"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldContent     = "snippet"
)

// Flash messages shown after snippet actions.
const (
	MessageCreated  = "The snippet was created successfully"
	MessageUpdated  = "The snippet was updated successfully"
	MessageDeleted  = "The snippet has been deleted!"
	MessageNotFound = "The snippet no longer exists."
)
