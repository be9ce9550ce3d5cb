// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/ctxutil"
	"github.com/taibuivan/snipbin/internal/platform/validate"
	"github.com/taibuivan/snipbin/pkg/pagination"
	"github.com/taibuivan/snipbin/pkg/tags"
	"github.com/taibuivan/snipbin/pkg/uuid"
)

// # Service Layer

// Service orchestrates snippet use cases.
//
// It trusts its caller for authorization: handlers must pass every mutation
// through [Guard.Authorize] first. The owner-matching storage calls are the
// second line of defence.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// validateInput applies the field rules shared by create and update.
func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, input.Title, constants.SnippetTitleMaxLength).
		MaxLen(FieldLanguage, input.Language, constants.SnippetLanguageMaxLength).
		MaxLen(FieldDescription, input.Description, constants.SnippetDescriptionMaxLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, constants.SnippetContentMaxLength)
	return validator.Err()
}

/*
Create stores a new snippet owned by owner.

Parameters:
  - context: context.Context
  - owner: string (the session's username, never client input)
  - input: Input

Returns:
  - *Snippet: Created entity
  - error: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, owner string, input Input) (*Snippet, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	currentTime := time.Now().UTC()
	snippet := &Snippet{
		ID:          uuid.New(),
		Owner:       owner,
		Title:       input.Title,
		Language:    input.Language,
		Description: input.Description,
		Tags:        tags.Parse(input.Tags),
		Content:     input.Content,
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}

	if err := service.repository.Create(context, snippet); err != nil {
		return nil, fmt.Errorf("snippet_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "snippet_created",
		slog.String("snippet_id", snippet.ID),
		slog.String("owner", owner),
	)

	return snippet, nil
}

/*
Get returns a single snippet.

Description: An id that is not a UUID cannot exist and is reported as
NotFound without a query.
*/
func (service *Service) Get(context context.Context, id string) (*Snippet, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Snippet")
	}

	snippet, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("snippet_service_get_failed: %w", err)
	}

	return snippet, nil
}

// List returns one page of snippets matching filter and the total count.
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Snippet, int, error) {
	snippets, total, err := service.repository.List(context, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("snippet_service_list_failed: %w", err)
	}
	return snippets, total, nil
}

/*
Update replaces the editable fields of the snippet id owned by owner.

Parameters:
  - context: context.Context
  - id: string
  - owner: string
  - input: Input

Returns:
  - *Snippet: Updated entity
  - error: ValidationError, NotFound (missing or not owned), or storage failures
*/
func (service *Service) Update(context context.Context, id, owner string, input Input) (*Snippet, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Snippet")
	}

	snippet := &Snippet{
		ID:          id,
		Owner:       owner,
		Title:       input.Title,
		Language:    input.Language,
		Description: input.Description,
		Tags:        tags.Parse(input.Tags),
		Content:     input.Content,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := service.repository.Update(context, snippet); err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("snippet_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "snippet_updated",
		slog.String("snippet_id", id),
		slog.String("owner", owner),
	)

	return snippet, nil
}

// Delete removes the snippet id owned by owner.
func (service *Service) Delete(context context.Context, id, owner string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound("Snippet")
	}

	if err := service.repository.Delete(context, id, owner); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("snippet_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "snippet_deleted",
		slog.String("snippet_id", id),
		slog.String("owner", owner),
	)

	return nil
}
