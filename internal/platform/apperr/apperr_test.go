// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
)

func TestHasCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("snippet_service_update_failed: %w", apperr.NotFound("Snippet"))

	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.False(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
}

func TestUnauthenticated_RendersAsNotFound(t *testing.T) {
	err := apperr.Unauthenticated()

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, apperr.CodeUnauthenticated, err.Code)
}

func TestIsDomain(t *testing.T) {
	assert.True(t, apperr.IsDomain(apperr.Forbidden("no")))
	assert.True(t, apperr.IsDomain(apperr.DuplicateEmail()))
	assert.False(t, apperr.IsDomain(apperr.Internal(errors.New("db down"))))
	assert.False(t, apperr.IsDomain(errors.New("raw")))
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}
