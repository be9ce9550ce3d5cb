// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package memory implements in-memory stores for local development
// (STORAGE_DRIVER=memory) and for tests.
//
// Each store guards its state with a single mutex, so every operation is
// atomic with respect to the others, matching the guarantees the PostgreSQL
// constraints and Redis transactions give in production.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/snippet"
	"github.com/taibuivan/snipbin/internal/users/account"
	"github.com/taibuivan/snipbin/internal/users/session"
	"github.com/taibuivan/snipbin/pkg/pagination"
	"github.com/taibuivan/snipbin/pkg/slice"
)

// Ensure interfaces are met.
var (
	_ account.Repository = (*AccountStore)(nil)
	_ snippet.Repository = (*SnippetStore)(nil)
	_ session.Store      = (*SessionStore)(nil)
)

// # Accounts

// AccountStore implements account.Repository.
type AccountStore struct {
	mu         sync.Mutex
	byUsername map[string]account.Account
	emails     map[string]struct{}
}

// NewAccountStore creates an empty [AccountStore].
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byUsername: make(map[string]account.Account),
		emails:     make(map[string]struct{}),
	}
}

// Create stores a copy of the account. Username uniqueness is checked before email,
// the same order in which the table constraints are declared.
func (repository *AccountStore) Create(context context.Context, newAccount *account.Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byUsername[newAccount.Username]; taken {
		return apperr.DuplicateUsername()
	}
	if _, taken := repository.emails[newAccount.Email]; taken {
		return apperr.DuplicateEmail()
	}

	repository.byUsername[newAccount.Username] = *newAccount
	repository.emails[newAccount.Email] = struct{}{}
	return nil
}

// FindByUsername returns a copy of the account.
func (repository *AccountStore) FindByUsername(context context.Context, username string) (*account.Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	found, ok := repository.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return &found, nil
}

// # Snippets

// SnippetStore implements snippet.Repository.
type SnippetStore struct {
	mu       sync.Mutex
	snippets map[string]snippet.Snippet
}

// NewSnippetStore creates an empty [SnippetStore].
func NewSnippetStore() *SnippetStore {
	return &SnippetStore{snippets: make(map[string]snippet.Snippet)}
}

// copySnippet detaches the tag slice from the caller's.
func copySnippet(item snippet.Snippet) snippet.Snippet {
	item.Tags = slices.Clone(item.Tags)
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item
}

// Create stores a copy of the snippet.
func (repository *SnippetStore) Create(context context.Context, item *snippet.Snippet) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.snippets[item.ID] = copySnippet(*item)
	return nil
}

// FindByID returns a copy of the snippet.
func (repository *SnippetStore) FindByID(context context.Context, id string) (*snippet.Snippet, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	found, ok := repository.snippets[id]
	if !ok {
		return nil, apperr.NotFound("Snippet")
	}
	copied := copySnippet(found)
	return &copied, nil
}

// List filters, sorts by (CreatedAt DESC, ID DESC), then pages.
func (repository *SnippetStore) List(context context.Context, filter snippet.Filter, page pagination.Params) ([]*snippet.Snippet, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	matches := slice.Filter(slices.Collect(maps.Values(repository.snippets)), func(item snippet.Snippet) bool {
		if filter.Owner != "" && item.Owner != filter.Owner {
			return false
		}
		return filter.Tag == "" || slices.Contains(item.Tags, filter.Tag)
	})

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	total := len(matches)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)

	result := make([]*snippet.Snippet, 0, end-start)
	for _, item := range matches[start:end] {
		copied := copySnippet(item)
		result = append(result, &copied)
	}

	return result, total, nil
}

// Update overwrites the editable fields when both id and owner match.
func (repository *SnippetStore) Update(context context.Context, item *snippet.Snippet) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.snippets[item.ID]
	if !ok || existing.Owner != item.Owner {
		return apperr.NotFound("Snippet")
	}

	existing.Title = item.Title
	existing.Language = item.Language
	existing.Description = item.Description
	existing.Tags = item.Tags
	existing.Content = item.Content
	existing.UpdatedAt = item.UpdatedAt
	repository.snippets[item.ID] = copySnippet(existing)

	item.CreatedAt = existing.CreatedAt
	return nil
}

// Delete removes the snippet when both id and owner match.
func (repository *SnippetStore) Delete(context context.Context, id, owner string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.snippets[id]
	if !ok || existing.Owner != owner {
		return apperr.NotFound("Snippet")
	}

	delete(repository.snippets, id)
	return nil
}

// # Sessions

type sessionEntry struct {
	record    session.Record
	expiresAt time.Time
}

type flashEntry struct {
	flash     session.Flash
	expiresAt time.Time
}

// SessionStore implements session.Store with lazy expiry.
type SessionStore struct {
	mu      sync.Mutex
	records map[string]sessionEntry
	flashes map[string]flashEntry
	now     func() time.Time
}

// NewSessionStore creates an empty [SessionStore].
func NewSessionStore() *SessionStore {
	return &SessionStore{
		records: make(map[string]sessionEntry),
		flashes: make(map[string]flashEntry),
		now:     time.Now,
	}
}

// Get returns the record if present and unexpired.
func (repository *SessionStore) Get(context context.Context, id string) (*session.Record, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry, ok := repository.records[id]
	if !ok || !repository.now().Before(entry.expiresAt) {
		delete(repository.records, id)
		return nil, apperr.NotFound("Session")
	}

	record := entry.record
	return &record, nil
}

// Save creates or replaces a record.
func (repository *SessionStore) Save(context context.Context, id string, record session.Record, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records[id] = sessionEntry{record: record, expiresAt: repository.now().Add(ttl)}
	return nil
}

// Delete removes a record and its flash.
func (repository *SessionStore) Delete(context context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.records, id)
	delete(repository.flashes, id)
	return nil
}

// Rotate moves a session to newID under one lock.
func (repository *SessionStore) Rotate(context context.Context, oldID, newID string, record session.Record, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records[newID] = sessionEntry{record: record, expiresAt: repository.now().Add(ttl)}
	if oldID != "" {
		delete(repository.records, oldID)
		delete(repository.flashes, oldID)
	}
	return nil
}

// SetFlash replaces the pending flash.
func (repository *SessionStore) SetFlash(context context.Context, id string, flash session.Flash, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.flashes[id] = flashEntry{flash: flash, expiresAt: repository.now().Add(ttl)}
	return nil
}

// TakeFlash reads and removes the pending flash.
func (repository *SessionStore) TakeFlash(context context.Context, id string) (*session.Flash, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry, ok := repository.flashes[id]
	delete(repository.flashes, id)
	if !ok || !repository.now().Before(entry.expiresAt) {
		return nil, nil
	}

	flash := entry.flash
	return &flash, nil
}
