// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SnippetTable represents the 'snippet' table.
type SnippetTable struct {
	Table       string
	ID          string
	Owner       string
	Title       string
	Language    string
	Description string
	Tags        string
	Content     string
	CreatedAt   string
	UpdatedAt   string
}

// Snippet is the schema definition for snippet.
var Snippet = SnippetTable{
	Table:       "snippet",
	ID:          "id",
	Owner:       "owner",
	Title:       "title",
	Language:    "language",
	Description: "description",
	Tags:        "tags",
	Content:     "content",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names in scan order.
func (t SnippetTable) Columns() []string {
	return []string{
		t.ID, t.Owner, t.Title, t.Language, t.Description,
		t.Tags, t.Content, t.CreatedAt, t.UpdatedAt,
	}
}
