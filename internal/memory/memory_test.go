// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/snippet"
	"github.com/taibuivan/snipbin/internal/users/account"
	"github.com/taibuivan/snipbin/internal/users/session"
	"github.com/taibuivan/snipbin/pkg/pagination"
)

func TestAccountStore_Duplicates(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	require.NoError(t, store.Create(ctx, &account.Account{ID: "1", Username: "alice", Email: "alice@example.com"}))

	err := store.Create(ctx, &account.Account{ID: "2", Username: "alice", Email: "other@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateUsername))

	err = store.Create(ctx, &account.Account{ID: "3", Username: "alice", Email: "alice@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateUsername), "username wins when both collide")

	err = store.Create(ctx, &account.Account{ID: "4", Username: "bob", Email: "alice@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateEmail))

	_, err = store.FindByUsername(ctx, "Alice")
	assert.True(t, apperr.IsNotFound(err), "lookup is exact")
}

func TestSnippetStore_ListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	store := NewSnippetStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []snippet.Snippet{
		{ID: "a", Owner: "alice", Tags: []string{"go"}, CreatedAt: base},
		{ID: "b", Owner: "bob", Tags: []string{"sql"}, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Owner: "alice", Tags: []string{"go", "sql"}, CreatedAt: base.Add(time.Minute)},
		{ID: "d", Owner: "alice", CreatedAt: base.Add(2 * time.Minute)},
	} {
		s := s
		require.NoError(t, store.Create(ctx, &s))
	}

	ids := func(snippets []*snippet.Snippet) []string {
		out := []string{}
		for _, s := range snippets {
			out = append(out, s.ID)
		}
		return out
	}

	all, total, err := store.List(ctx, snippet.Filter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(all))

	mine, total, err := store.List(ctx, snippet.Filter{Owner: "alice"}, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"a"}, ids(mine))

	tagged, _, err := store.List(ctx, snippet.Filter{Tag: "sql"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(tagged))

	beyond, total, err := store.List(ctx, snippet.Filter{}, pagination.Params{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, beyond)
}

func TestSnippetStore_MutationsMatchOwner(t *testing.T) {
	ctx := context.Background()
	store := NewSnippetStore()
	require.NoError(t, store.Create(ctx, &snippet.Snippet{ID: "x", Owner: "alice", Content: "v1"}))

	err := store.Update(ctx, &snippet.Snippet{ID: "x", Owner: "bob", Content: "v2"})
	assert.True(t, apperr.IsNotFound(err))

	err = store.Delete(ctx, "x", "bob")
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, store.Update(ctx, &snippet.Snippet{ID: "x", Owner: "alice", Content: "v2"}))
	got, err := store.FindByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)

	require.NoError(t, store.Delete(ctx, "x", "alice"))
	_, err = store.FindByID(ctx, "x")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSessionStore_ExpiryAndFlash(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "s1", session.Record{UserID: "u1", Username: "alice"}, time.Hour))
	require.NoError(t, store.SetFlash(ctx, "s1", session.Flash{Kind: session.FlashSuccess, Text: "hi"}, time.Hour))

	flash, err := store.TakeFlash(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, "hi", flash.Text)

	flash, err = store.TakeFlash(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, flash)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSessionStore_Rotate(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(t, store.Save(ctx, "old", session.Record{}, time.Hour))
	require.NoError(t, store.SetFlash(ctx, "old", session.Flash{Kind: session.FlashDanger, Text: "x"}, time.Hour))
	require.NoError(t, store.Rotate(ctx, "old", "new", session.Record{UserID: "u1", Username: "alice"}, time.Hour))

	_, err := store.Get(ctx, "old")
	assert.True(t, apperr.IsNotFound(err))
	flash, err := store.TakeFlash(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, flash)

	record, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Username)
}
