// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snipbin/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{query: "", want: pagination.Params{Page: 1, Limit: 20}},
		{query: "?page=3&limit=5", want: pagination.Params{Page: 3, Limit: 5}},
		{query: "?page=0&limit=0", want: pagination.Params{Page: 1, Limit: 20}},
		{query: "?page=abc&limit=xyz", want: pagination.Params{Page: 1, Limit: 20}},
		{query: "?page=2&limit=500", want: pagination.Params{Page: 2, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestOffsetAndMeta(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())

	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())

	meta := pagination.NewMeta(2, 10, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	last := pagination.NewMeta(3, 10, 21)
	assert.False(t, last.HasNext)

	empty := pagination.NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
