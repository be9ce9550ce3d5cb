// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/validate"
)

func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(v *validate.Validator)
		isValid bool
	}{
		{"required_ok", func(v *validate.Validator) { v.Required("title", "Hello") }, true},
		{"required_empty", func(v *validate.Validator) { v.Required("title", "") }, false},
		{"required_whitespace", func(v *validate.Validator) { v.Required("title", " \t ") }, false},
		{"max_len_counts_runes", func(v *validate.Validator) { v.MaxLen("title", "ééé", 3) }, true},
		{"max_len_exceeded", func(v *validate.Validator) { v.MaxLen("title", strings.Repeat("x", 4), 3) }, false},
		{"min_len_ok", func(v *validate.Validator) { v.MinLen("username", "bob", 3) }, true},
		{"min_len_short", func(v *validate.Validator) { v.MinLen("username", "bo", 3) }, false},
		{"alnum_ok", func(v *validate.Validator) { v.Alphanumeric("username", "alice42") }, true},
		{"alnum_empty_left_to_required", func(v *validate.Validator) { v.Alphanumeric("username", "") }, true},
		{"alnum_underscore", func(v *validate.Validator) { v.Alphanumeric("username", "alice_b") }, false},
		{"alnum_non_ascii", func(v *validate.Validator) { v.Alphanumeric("username", "alicé") }, false},
		{"email_ok", func(v *validate.Validator) { v.Email("email", "alice@example.com") }, true},
		{"email_no_at", func(v *validate.Validator) { v.Email("email", "invalid-email") }, false},
		{"email_no_domain", func(v *validate.Validator) { v.Email("email", "alice@") }, false},
		{"email_undotted_domain", func(v *validate.Validator) { v.Email("email", "alice@localhost") }, false},
		{"email_display_name", func(v *validate.Validator) { v.Email("email", "Alice <alice@example.com>") }, false},
		{"email_empty", func(v *validate.Validator) { v.Email("email", "") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)

			if tt.isValid {
				assert.NoError(t, v.Err())
				return
			}

			appError := apperr.As(v.Err())
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
		})
	}
}

func TestValidator_FirstFailurePerField(t *testing.T) {
	err := (&validate.Validator{}).
		Required("username", "").
		MinLen("username", "", 3).
		Alphanumeric("username", "").
		Email("email", "not-an-email").
		MaxLen("password", "123456789", 8).
		Err()

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Len(t, appError.Details, 3)

	assert.Equal(t, "username", appError.Details[0].Field)
	assert.Equal(t, "This field is required", appError.Details[0].Message)
	assert.Equal(t, "email", appError.Details[1].Field)
	assert.Equal(t, "password", appError.Details[2].Field)
}
